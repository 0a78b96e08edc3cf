package utils

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

var downloadClient = &http.Client{Timeout: 30 * time.Second}

// DownloadFile fetches a remote file, used by the media import-from-URL path.
func DownloadFile(url string) ([]byte, string, error) {
	resp, err := downloadClient.Get(url)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	return content, resp.Header.Get("Content-Type"), nil
}
