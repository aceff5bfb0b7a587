package timerange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantStart Minutes
		wantEnd   Minutes
		wantErr   bool
	}{
		{
			name:      "canonical morning range",
			input:     "09:00 AM - 08:00 PM",
			wantStart: 9 * 60,
			wantEnd:   20 * 60,
		},
		{
			name:      "single digit hour",
			input:     "9:00 AM - 1:00 PM",
			wantStart: 9 * 60,
			wantEnd:   13 * 60,
		},
		{
			name:      "lowercase meridiem",
			input:     "09:00 am - 05:30 pm",
			wantStart: 9 * 60,
			wantEnd:   17*60 + 30,
		},
		{
			name:      "no space before meridiem",
			input:     "09:00AM - 05:00PM",
			wantStart: 9 * 60,
			wantEnd:   17 * 60,
		},
		{
			name:      "surrounding whitespace",
			input:     "  10:15 AM - 11:45 AM  ",
			wantStart: 10*60 + 15,
			wantEnd:   11*60 + 45,
		},
		{
			name:      "12 AM is midnight",
			input:     "12:00 AM - 12:00 PM",
			wantStart: 0,
			wantEnd:   12 * 60,
		},
		{
			name:    "missing meridiem",
			input:   "9:00-8:00PM",
			wantErr: true,
		},
		{
			name:    "24-hour format",
			input:   "14:00 PM - 16:00 PM",
			wantErr: true,
		},
		{
			name:    "hour zero",
			input:   "00:30 AM - 01:30 AM",
			wantErr: true,
		},
		{
			name:    "minutes out of range",
			input:   "09:60 AM - 10:00 AM",
			wantErr: true,
		},
		{
			name:    "garbage",
			input:   "not a range",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng, err := ParseRange(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, rng.Start)
			assert.Equal(t, tt.wantEnd, rng.End)
		})
	}
}

func TestSlots(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		duration int
		want     []string
	}{
		{
			name:     "even split",
			input:    "09:00 AM - 10:00 AM",
			duration: 30,
			want:     []string{"09:00 AM – 09:30 AM", "09:30 AM – 10:00 AM"},
		},
		{
			name:     "trailing partial slot dropped",
			input:    "09:00 AM - 10:00 AM",
			duration: 45,
			want:     []string{"09:00 AM – 09:45 AM"},
		},
		{
			name:     "duration longer than range",
			input:    "09:00 AM - 10:00 AM",
			duration: 90,
			want:     []string{},
		},
		{
			name:     "duration equals range",
			input:    "09:00 AM - 10:00 AM",
			duration: 60,
			want:     []string{"09:00 AM – 10:00 AM"},
		},
		{
			name:     "noon boundary keeps 12-hour labels",
			input:    "11:00 AM - 01:00 PM",
			duration: 60,
			want:     []string{"11:00 AM – 12:00 PM", "12:00 PM – 01:00 PM"},
		},
		{
			name:     "reversed range yields nothing",
			input:    "05:00 PM - 09:00 AM",
			duration: 30,
			want:     []string{},
		},
		{
			name:     "zero-length range yields nothing",
			input:    "09:00 AM - 09:00 AM",
			duration: 15,
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng, err := ParseRange(tt.input)
			require.NoError(t, err)

			slots := rng.Slots(tt.duration)

			labels := make([]string, 0, len(slots))
			for _, s := range slots {
				labels = append(labels, s.Label())
			}
			assert.Equal(t, tt.want, labels)
		})
	}
}

func TestSlotsNonPositiveDuration(t *testing.T) {
	rng, err := ParseRange("09:00 AM - 05:00 PM")
	require.NoError(t, err)

	assert.Empty(t, rng.Slots(0))
	assert.Empty(t, rng.Slots(-30))
}

// Метка слота обязана совпадать байт-в-байт с тем, что лежит в time_slot:
// разделитель - en-dash, часы и минуты всегда с ведущим нулем.
func TestSlotLabelCanonical(t *testing.T) {
	slot := Slot{Start: 9 * 60, End: 9*60 + 30}
	label := slot.Label()

	assert.Equal(t, "09:00 AM – 09:30 AM", label)
	assert.Contains(t, label, "–")
	assert.NotContains(t, label, " - ")
}

func TestFormat12(t *testing.T) {
	tests := []struct {
		minutes Minutes
		want    string
	}{
		{0, "12:00 AM"},
		{1, "12:01 AM"},
		{9 * 60, "09:00 AM"},
		{12 * 60, "12:00 PM"},
		{12*60 + 30, "12:30 PM"},
		{13 * 60, "01:00 PM"},
		{23*60 + 59, "11:59 PM"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.minutes.Format12())
	}
}
