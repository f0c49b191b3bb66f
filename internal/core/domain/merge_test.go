package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeRequest_Validate(t *testing.T) {
	regular := "/no/such/dir/regular.kmz"
	alley := "/no/such/dir/alley.kmz"

	tests := []struct {
		name  string
		req   MergeRequest
		field string
	}{
		{name: "valid without touching disk", req: MergeRequest{RegularPath: regular, AlleyPath: alley, AreaID: "JKT-01"}},
		{name: "missing regular", req: MergeRequest{AlleyPath: alley, AreaID: "A"}, field: "regular"},
		{name: "missing alley", req: MergeRequest{RegularPath: regular, AreaID: "A"}, field: "alley"},
		{name: "blank area", req: MergeRequest{RegularPath: regular, AlleyPath: alley, AreaID: "   "}, field: "area"},
		{name: "area with slash", req: MergeRequest{RegularPath: regular, AlleyPath: alley, AreaID: "a/b"}, field: "area"},
		{name: "bad report", req: MergeRequest{RegularPath: regular, AlleyPath: alley, AreaID: "A", ReportFormat: "pdf"}, field: "report"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestMergeRequest_OutputBaseName(t *testing.T) {
	req := MergeRequest{AreaID: " BDG-7 "}
	assert.Equal(t, "BDG-7_Processed", req.OutputBaseName())
}

func TestCopyThroughPaths(t *testing.T) {
	assert.Len(t, CopyThroughPaths, 7)
	assert.Equal(t, "QSPAN", CopyThroughPaths[6])
	assert.NotContains(t, CopyThroughPaths, PathHomePass)
	assert.NotContains(t, CopyThroughPaths, PathHook)
}

func TestNopProgress(t *testing.T) {
	assert.NotPanics(t, func() { NopProgress(50, "halfway") })
}
