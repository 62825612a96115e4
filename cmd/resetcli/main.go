// Command resetcli walks an account through the portal's password reset
// flow from a terminal.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mabinihs/portal/internal/pkg/clock"
	"github.com/mabinihs/portal/internal/resetclient"
	"github.com/spf13/pflag"
)

func main() {
	baseURL := pflag.StringP("url", "u", "http://localhost:8080", "portal API base URL")
	role := pflag.StringP("role", "r", "student", "account role: student or teacher")
	pflag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctrl := resetclient.NewController(resetclient.NewClient(*baseURL, nil), clock.New(), *role)
	if err := run(ctx, ctrl, os.Stdin, os.Stdout); err != nil && !errors.Is(err, io.EOF) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, ctrl *resetclient.Controller, in io.Reader, out io.Writer) error {
	lines := bufio.NewScanner(in)
	read := func(prompt string) (string, error) {
		fmt.Fprint(out, prompt)
		if !lines.Scan() {
			if err := lines.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return strings.TrimSpace(lines.Text()), nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch ctrl.State().Step {
		case resetclient.StepRequest:
			email, err := read("Email: ")
			if err != nil {
				return err
			}
			_ = ctrl.Request(ctx, email)

		case resetclient.StepVerify:
			prompt := "Enter the 6-digit code, [r]esend or [c]hange email: "
			if left := ctrl.ResendIn(); left > 0 {
				prompt = fmt.Sprintf("Enter the 6-digit code or [c]hange email (resend in %ds): ", int(left.Seconds()+0.5))
			}
			line, err := read(prompt)
			if err != nil {
				return err
			}
			switch strings.ToLower(line) {
			case "r":
				if err := ctrl.Resend(ctx); errors.Is(err, resetclient.ErrResendCooling) {
					fmt.Fprintln(out, "Please wait before requesting a new code.")
				}
			case "c":
				ctrl.ChangeIdentity()
			default:
				ctrl.Code().Clear()
				ctrl.Code().Paste(line)
				_ = ctrl.Verify(ctx)
			}

		case resetclient.StepSetSecret:
			password, err := read("New password: ")
			if err != nil {
				return err
			}
			confirm, err := read("Confirm password: ")
			if err != nil {
				return err
			}
			_ = ctrl.SetSecret(ctx, password, confirm)

		case resetclient.StepDone:
			fmt.Fprintln(out, ctrl.State().Notice)
			return nil
		}

		report(out, ctrl.State())
	}
}

func report(out io.Writer, s resetclient.State) {
	switch {
	case s.Err != nil:
		fmt.Fprintln(out, "Error:", s.Err)
		var apiErr *resetclient.APIError
		if errors.As(s.Err, &apiErr) && apiErr.Expired {
			fmt.Fprintln(out, "Request a new code to continue.")
		}
	case s.Notice != "" && s.Step != resetclient.StepDone:
		fmt.Fprintln(out, s.Notice)
	}
}
