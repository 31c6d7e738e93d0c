package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		uri        string
		wantBucket string
		wantPrefix string
		wantErr    bool
	}{
		{
			name:       "gs with prefix",
			uri:        "gs://my-bucket/custom-image-x-20260826/sources",
			wantBucket: "my-bucket",
			wantPrefix: "custom-image-x-20260826/sources",
		},
		{
			name:       "s3 with prefix",
			uri:        "s3://bucket/a/b/c",
			wantBucket: "bucket",
			wantPrefix: "a/b/c",
		},
		{
			name:       "bucket only",
			uri:        "gs://bucket",
			wantBucket: "bucket",
			wantPrefix: "",
		},
		{
			name:       "trailing slash trimmed",
			uri:        "gs://bucket/sources/",
			wantBucket: "bucket",
			wantPrefix: "sources",
		},
		{
			name:    "unsupported scheme",
			uri:     "https://bucket/sources",
			wantErr: true,
		},
		{
			name:    "missing bucket",
			uri:     "gs:///sources",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			bucket, prefix, err := ParseURI(tt.uri)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantPrefix, prefix)
		})
	}
}
