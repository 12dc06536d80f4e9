package main

import (
	"errors"
	"fmt"

	"github.com/nao1215/devchat/pkg/httpclient"
)

// expectStatus はerrが指定したステータスコードのStatusErrorであることを確認する。
func expectStatus(err error, want int) error {
	if err == nil {
		return fmt.Errorf("request succeeded, want status %d", want)
	}
	var statusErr *httpclient.StatusError
	if !errors.As(err, &statusErr) {
		return fmt.Errorf("want status %d: %w", want, err)
	}
	if statusErr.StatusCode != want {
		return fmt.Errorf("status = %d, want %d (body=%s)", statusErr.StatusCode, want, string(statusErr.Body))
	}
	return nil
}
