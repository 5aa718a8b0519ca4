package oauth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_AddOAuthParameter(t *testing.T) {
	tests := []struct {
		key     string
		wantErr bool
	}{
		{key: "oauth_token"},
		{key: "oauth_nonce"},
		{key: "scope"},
		{key: "realm"},
		{key: "token", wantErr: true},
		{key: "OAUTH_TOKEN", wantErr: true},
		{key: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			req, err := NewRequest(GET, "http://example.com", nil)
			require.NoError(t, err)

			err = req.AddOAuthParameter(tt.key, "v")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOAuthParameter)
				assert.Equal(t, 0, req.OAuthParams().Len())
				return
			}
			require.NoError(t, err)
			assert.True(t, req.OAuthParams().Contains(Parameter{tt.key, "v"}))
		})
	}
}

func TestRequest_OAuthParamsStayOffTheWire(t *testing.T) {
	req, err := NewRequest(POST, "http://example.com", nil)
	require.NoError(t, err)
	require.NoError(t, req.AddOAuthParameter("oauth_token", "abc"))

	out := req.Resolve()
	assert.Equal(t, "http://example.com", out.URL)
	assert.Empty(t, out.Body)
	assert.NotContains(t, out.Headers, HeaderAuthorization)
}

func TestRequest_AuthorizationHeader(t *testing.T) {
	req, err := NewRequest(GET, "http://photos.example.net/photos", nil)
	require.NoError(t, err)
	assert.Equal(t, "", req.AuthorizationHeader())

	require.NoError(t, req.AddOAuthParameter("oauth_consumer_key", "dpf43f3p2l4k3l03"))
	require.NoError(t, req.AddOAuthParameter("oauth_nonce", "kllo 9940"))
	assert.Equal(t, `OAuth oauth_consumer_key="dpf43f3p2l4k3l03", oauth_nonce="kllo%209940"`, req.AuthorizationHeader())

	req.SetRealm("Photos & more")
	assert.Equal(t, "Photos & more", req.Realm())
	assert.Equal(t,
		`OAuth oauth_consumer_key="dpf43f3p2l4k3l03", oauth_nonce="kllo%209940", realm="Photos%20%26%20more"`,
		req.AuthorizationHeader())
}
