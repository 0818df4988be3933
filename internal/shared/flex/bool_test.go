package flex

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBool_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Bool
		wantErr bool
	}{
		{name: "true", input: `{"v":true}`, want: true},
		{name: "false", input: `{"v":false}`, want: false},
		{name: "one", input: `{"v":1}`, want: true},
		{name: "zero", input: `{"v":0}`, want: false},
		{name: "string one", input: `{"v":"1"}`, want: true},
		{name: "string true", input: `{"v":"true"}`, want: true},
		{name: "null", input: `{"v":null}`, want: false},
		{name: "missing", input: `{}`, want: false},
		{name: "garbage", input: `{"v":"maybe"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out struct {
				V Bool `json:"v"`
			}
			err := json.Unmarshal([]byte(tt.input), &out)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.V)
		})
	}
}

func TestBool_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		V Bool `json:"v"`
	}{V: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":true}`, string(data))
}

func TestBool_Scan(t *testing.T) {
	tests := []struct {
		src     any
		want    Bool
		wantErr bool
	}{
		{src: true, want: true},
		{src: int64(1), want: true},
		{src: int64(0), want: false},
		{src: []byte("1"), want: true},
		{src: "f", want: false},
		{src: nil, want: false},
		{src: struct{}{}, wantErr: true},
	}

	for _, tt := range tests {
		var b Bool
		err := b.Scan(tt.src)
		if tt.wantErr {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, b, "src=%v", tt.src)
	}
}
