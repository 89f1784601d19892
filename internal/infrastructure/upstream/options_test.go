package upstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/visitorsvc/domain"
)

func TestDecodeOptionsCasingVariants(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []domain.Option
	}{
		{
			"lowercase string ids",
			`[{"id":"1","name":"Meeting"},{"id":"2","name":"Interview"}]`,
			[]domain.Option{{ID: "1", Name: "Meeting"}, {ID: "2", Name: "Interview"}},
		},
		{
			"uppercase keys",
			`[{"Id":"10","Name":"HQ"}]`,
			[]domain.Option{{ID: "10", Name: "HQ"}},
		},
		{
			"numeric ids",
			`[{"Id":7,"Name":"Accounts"}]`,
			[]domain.Option{{ID: "7", Name: "Accounts"}},
		},
		{
			"mixed per entry",
			`[{"id":"1","Name":"A"},{"Id":2,"name":"B"}]`,
			[]domain.Option{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}},
		},
		{
			"empty entries dropped",
			`[{"id":"1","name":"A"},{}]`,
			[]domain.Option{{ID: "1", Name: "A"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeOptions([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeOptionsRejectsNonArray(t *testing.T) {
	_, err := decodeOptions([]byte(`{"id":"1"}`))
	assert.Error(t, err)
}

func TestStatusOKVariants(t *testing.T) {
	assert.True(t, statusOK(true))
	assert.True(t, statusOK(float64(200)))
	assert.True(t, statusOK(float64(1)))
	assert.True(t, statusOK("Success"))
	assert.True(t, statusOK("true"))
	assert.True(t, statusOK("200"))

	assert.False(t, statusOK(false))
	assert.False(t, statusOK(float64(0)))
	assert.False(t, statusOK("failed"))
	assert.False(t, statusOK(nil))
}
