package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hcerrors "github.com/hostops/hostctl/internal/errors"
	"github.com/hostops/hostctl/internal/resolve"
	"github.com/hostops/hostctl/internal/secure"
)

func testCreds(endpoint string) *resolve.Credentials {
	return &resolve.Credentials{
		Login:    "u",
		Secret:   secure.NewString("s"),
		Endpoint: endpoint,
	}
}

func TestInvokeSuccessBothLevels(t *testing.T) {
	var gotForm url.Values
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm
		gotPath = r.URL.Path
		w.Write([]byte(`{"status":"success","answer":{"status":"success","result":[{"fqdn":"a.example"}]}}`))
	}))
	defer srv.Close()

	result, err := NewClient(nil).Invoke(context.Background(), testCreds(srv.URL), Request{
		Section: "domain",
		Method:  "getList",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"fqdn":"a.example"}]`, string(result))
	assert.Equal(t, "/domain/getList", gotPath)
	assert.Equal(t, "u", gotForm.Get("login"))
	assert.Equal(t, "s", gotForm.Get("passwd"))
	assert.Equal(t, "json", gotForm.Get("output_format"))
	assert.Empty(t, gotForm.Get("input_data"), "no payload without input")
}

func TestInvokeSerializesInputAndQuery(t *testing.T) {
	var gotForm url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm
		w.Write([]byte(`{"status":"success","answer":{"status":"success","result":true}}`))
	}))
	defer srv.Close()

	_, err := NewClient(nil).Invoke(context.Background(), testCreds(srv.URL), Request{
		Section: "db",
		Method:  "addDb",
		Input:   map[string]string{"suffix": "blog"},
		Query:   url.Values{"verbose": []string{"1"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "json", gotForm.Get("input_format"))
	assert.JSONEq(t, `{"suffix":"blog"}`, gotForm.Get("input_data"))
	assert.Equal(t, "1", gotForm.Get("verbose"))
}

func TestInvokeOuterAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","error_code":"AUTH_ERROR","error_text":"login or password is incorrect"}`))
	}))
	defer srv.Close()

	_, err := NewClient(nil).Invoke(context.Background(), testCreds(srv.URL), Request{Section: "user", Method: "getAccountInfo"})
	require.Error(t, err)
	assert.True(t, hcerrors.IsKind(err, hcerrors.KindAuth))
	assert.Equal(t, hcerrors.ExitAuth, hcerrors.ExitCode(err))
	assert.Equal(t, "AUTH_ERROR", hcerrors.ProviderCode(err))
	assert.Contains(t, err.Error(), "login or password is incorrect")
}

func TestInvokeOuterNonAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","error_code":"NO_SUCH_METHOD","error_text":"unknown method"}`))
	}))
	defer srv.Close()

	_, err := NewClient(nil).Invoke(context.Background(), testCreds(srv.URL), Request{Section: "user", Method: "bogus"})
	require.Error(t, err)
	assert.True(t, hcerrors.IsKind(err, hcerrors.KindAPIMethod))
	assert.Equal(t, hcerrors.ExitAPI, hcerrors.ExitCode(err))
}

func TestInvokeInnerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","answer":{"status":"error","errors":[{"error_text":"x","error_code":"Y"}]}}`))
	}))
	defer srv.Close()

	_, err := NewClient(nil).Invoke(context.Background(), testCreds(srv.URL), Request{Section: "db", Method: "dropDb"})
	require.Error(t, err)
	assert.True(t, hcerrors.IsKind(err, hcerrors.KindAPIMethod))
	assert.Equal(t, "Y", hcerrors.ProviderCode(err))
	assert.Contains(t, err.Error(), "x")
	assert.Equal(t, hcerrors.ExitAPI, hcerrors.ExitCode(err))
}

func TestInvokeInnerFailureEmptyErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","answer":{"status":"error","errors":[]}}`))
	}))
	defer srv.Close()

	_, err := NewClient(nil).Invoke(context.Background(), testCreds(srv.URL), Request{Section: "db", Method: "dropDb"})
	require.Error(t, err)
	assert.True(t, hcerrors.IsKind(err, hcerrors.KindAPIMethod))
}

func TestInvokeNonJSONResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>maintenance</html>"))
	}))
	defer srv.Close()

	_, err := NewClient(nil).Invoke(context.Background(), testCreds(srv.URL), Request{Section: "user", Method: "getAccountInfo"})
	require.Error(t, err)
	assert.True(t, hcerrors.IsKind(err, hcerrors.KindAPIProtocol))
	assert.Contains(t, err.Error(), "non-JSON response")
}

func TestInvokeNon2xxStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(nil).Invoke(context.Background(), testCreds(srv.URL), Request{Section: "user", Method: "getAccountInfo"})
	require.Error(t, err)
	assert.True(t, hcerrors.IsKind(err, hcerrors.KindNetwork))
	assert.Contains(t, err.Error(), "HTTP 502 Bad Gateway")
	assert.Equal(t, hcerrors.ExitNetwork, hcerrors.ExitCode(err))
}

func TestInvokeTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	_, err := NewClient(nil).Invoke(context.Background(), testCreds(srv.URL), Request{
		Section: "user",
		Method:  "getAccountInfo",
		Timeout: 100 * time.Millisecond,
	})
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.True(t, hcerrors.IsKind(err, hcerrors.KindNetwork))
	assert.Contains(t, err.Error(), "timeout after 100ms")
	assert.Less(t, elapsed, 2*time.Second, "timeout must cancel the in-flight call promptly")
}

func TestInvokeTransportFault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := NewClient(nil).Invoke(context.Background(), testCreds(srv.URL), Request{Section: "user", Method: "getAccountInfo"})
	require.Error(t, err)
	assert.True(t, hcerrors.IsKind(err, hcerrors.KindNetwork))
}

func TestInterpretResultPassthrough(t *testing.T) {
	result, err := interpret([]byte(`{"status":"success","answer":{"status":"success","result":{"plan":"pro"}}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"plan":"pro"}`, string(result))
}

func TestInterpretMissingAnswer(t *testing.T) {
	_, err := interpret([]byte(`{"status":"success"}`))
	require.Error(t, err)
	assert.True(t, hcerrors.IsKind(err, hcerrors.KindAPIProtocol))
}
