package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModelValidate(t *testing.T) {
	t.Parallel()

	zero := 0
	four := 4

	testCases := []struct {
		name    string
		model   Model
		wantErr []string
	}{
		{
			name:  "empty model is valid",
			model: Model{},
		},
		{
			name: "valid model",
			model: Model{
				Workers:   &four,
				Auxiliary: AuxiliaryExclude,
				Projects:  []Project{{Name: "a", Root: "a"}, {Name: "b", Root: "b"}},
			},
		},
		{
			name: "every problem is reported",
			model: Model{
				Workers:   &zero,
				Auxiliary: "drop",
				Projects:  []Project{{Name: "a", Root: ""}, {Name: "a", Root: "x"}},
			},
			wantErr: []string{
				"workers must be at least 1",
				`invalid auxiliary policy "drop"`,
				`project "a" has an empty root`,
				`project "a" is defined more than once`,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.model.Validate()
			if len(tc.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			for _, want := range tc.wantErr {
				assert.ErrorContains(t, err, want)
			}
		})
	}
}
