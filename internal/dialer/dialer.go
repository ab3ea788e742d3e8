// Package dialer hands a phone number to the device for calling.
package dialer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"

	"github.com/dmitrijs2005/bloodbuddy/internal/models"
)

var ErrInvalidNumber = errors.New("invalid phone number")

type Dialer interface {
	Dial(ctx context.Context, phone string) error
}

// URIDialer prints a tel: URI and, when Open is set, passes it to the
// platform URL opener.
type URIDialer struct {
	Out  io.Writer
	Open bool

	// opener builds the command for a URI; nil means the platform default.
	opener func(ctx context.Context, uri string) *exec.Cmd
}

func NewURIDialer(out io.Writer, open bool) *URIDialer {
	return &URIDialer{Out: out, Open: open}
}

// URI returns the tel: URI for phone, keeping digits only. Ten-digit
// numbers get the +91 prefix.
func URI(phone string) (string, error) {
	digits := models.CleanDigits(phone)
	if digits == "" {
		return "", ErrInvalidNumber
	}
	if len(digits) == 10 {
		digits = "+91" + digits
	}
	return "tel:" + digits, nil
}

func (d *URIDialer) Dial(ctx context.Context, phone string) error {
	uri, err := URI(phone)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(d.Out, "Calling %s (%s)\n", models.FormatPhone(models.CleanDigits(phone)), uri); err != nil {
		return err
	}
	if !d.Open {
		return nil
	}

	opener := d.opener
	if opener == nil {
		opener = platformOpener
	}
	if err := opener(ctx, uri).Run(); err != nil {
		return fmt.Errorf("open %s: %w", uri, err)
	}
	return nil
}

func platformOpener(ctx context.Context, uri string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.CommandContext(ctx, "open", uri)
	case "windows":
		return exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", uri)
	default:
		return exec.CommandContext(ctx, "xdg-open", uri)
	}
}
