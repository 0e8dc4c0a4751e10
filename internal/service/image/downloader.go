package image

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Downloader скачивает картинку по ссылке из ответа API.
type Downloader struct {
	http     *http.Client
	maxBytes int64
}

// NewDownloader insecure отключает проверку TLS-сертификата (только для отладки прокси).
func NewDownloader(maxBytes int64, insecure bool) *Downloader {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if insecure {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // включается только флагом
	}
	return &Downloader{
		http:     &http.Client{Transport: tr, Timeout: 2 * time.Minute},
		maxBytes: maxBytes,
	}
}

func (d *Downloader) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := d.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if len(b) == 0 {
			b = []byte(resp.Status)
		}
		return nil, fmt.Errorf("image download error: status=%d, body=%s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, d.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > d.maxBytes {
		return nil, fmt.Errorf("image exceeds max size %d bytes", d.maxBytes)
	}
	return data, nil
}
