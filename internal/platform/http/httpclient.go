package http

import (
	"net"
	"net/http"
	"time"
)

// ClientOptions は外部API用HTTPクライアントの設定です。
type ClientOptions struct {
	// Timeout はリクエスト全体のタイムアウトです。0の場合は全体タイムアウトなし。
	Timeout time.Duration
	// UserAgent が空でなければ、すべてのリクエストに付与します。
	UserAgent string
}

// NewHTTPClient は外部API呼び出し用に設定されたHTTPクライアントを作成します。
//
// Transportは接続確立とTLSハンドシェイクにだけ上限を設けます。
// LLMの応答は数十秒かかることがあるため、全体タイムアウトは呼び出し元が決めます。
func NewHTTPClient(opts ClientOptions) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}

	var rt http.RoundTripper = t
	if opts.UserAgent != "" {
		rt = &userAgentTransport{base: t, userAgent: opts.UserAgent}
	}
	return &http.Client{Timeout: opts.Timeout, Transport: rt}
}

// userAgentTransport はUser-Agentヘッダーを補完するRoundTripperです。
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (u *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return u.base.RoundTrip(req)
	}
	// RoundTripperは受け取ったリクエストを変更してはいけない
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", u.userAgent)
	return u.base.RoundTrip(r)
}
