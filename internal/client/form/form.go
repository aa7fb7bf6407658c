// Package form implements the terminal registration form.
package form

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"faceauth/config"
	"faceauth/internal/errors"
)

// RejectedError is returned when the server refuses the registration.
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("registration rejected (%d): %s", e.StatusCode, e.Message)
}

// PasswordReader reads one secret line without echoing it.
type PasswordReader func() ([]byte, error)

// Registration is the flat record posted to the register endpoint.
type Registration struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// RegisteredUser is the part of the created record the form prints.
type RegisteredUser struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type errorPayload struct {
	Error string `json:"error"`
}

// Form prompts for the registration fields and submits them.
type Form struct {
	registerURL  string
	httpClient   *http.Client
	in           *bufio.Reader
	out          io.Writer
	readPassword PasswordReader
}

// New creates a form reading from in and writing prompts to out. A nil
// readPassword reads passwords as plain lines from in.
func New(cfg *config.ClientConfig, in io.Reader, out io.Writer, readPassword PasswordReader) (*Form, error) {
	if cfg == nil || strings.TrimSpace(cfg.RegisterURL) == "" {
		return nil, errors.New("client.registerUrl must be set")
	}

	return &Form{
		registerURL:  cfg.RegisterURL,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		in:           bufio.NewReader(in),
		out:          out,
		readPassword: readPassword,
	}, nil
}

// Run collects one registration, submits it and prints the outcome.
func (f *Form) Run(ctx context.Context) error {
	registration, err := f.Collect()
	if err != nil {
		return err
	}

	user, err := f.Submit(ctx, registration)
	if err != nil {
		var rejected *RejectedError
		if errors.As(err, &rejected) {
			fmt.Fprintf(f.out, "Registration failed: %s\n", rejected.Message)
		}

		return err
	}

	fmt.Fprintf(f.out, "Registered %s %s <%s> (id %s)\n", user.FirstName, user.LastName, user.Email, user.ID)

	return nil
}

// Collect prompts for the five fields.
func (f *Form) Collect() (*Registration, error) {
	var (
		registration Registration
		err          error
	)

	if registration.FirstName, err = f.line("First name"); err != nil {
		return nil, err
	}
	if registration.LastName, err = f.line("Last name"); err != nil {
		return nil, err
	}
	if registration.Email, err = f.line("Email"); err != nil {
		return nil, err
	}
	if registration.Password, err = f.secret("Password"); err != nil {
		return nil, err
	}
	if registration.ConfirmPassword, err = f.secret("Confirm password"); err != nil {
		return nil, err
	}

	return &registration, nil
}

// Submit posts the registration and waits for the answer. A non-200 answer
// is returned as a *RejectedError carrying the server's message.
func (f *Form) Submit(ctx context.Context, registration *Registration) (*RegisteredUser, error) {
	body, err := json.Marshal(registration)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode registration")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.registerURL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build register request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "register request failed")
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read register response")
	}

	if resp.StatusCode != http.StatusOK {
		var failure errorPayload
		if err := json.Unmarshal(payload, &failure); err != nil || failure.Error == "" {
			failure.Error = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		}

		return nil, &RejectedError{StatusCode: resp.StatusCode, Message: failure.Error}
	}

	var user RegisteredUser
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil, errors.Wrap(err, "failed to decode registered user")
	}

	return &user, nil
}

func (f *Form) line(label string) (string, error) {
	fmt.Fprintf(f.out, "%s: ", label)

	value, err := f.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || value == "") {
		return "", errors.Wrapf(err, "failed to read %s", strings.ToLower(label))
	}

	return strings.TrimSpace(value), nil
}

func (f *Form) secret(label string) (string, error) {
	if f.readPassword == nil {
		return f.line(label)
	}

	fmt.Fprintf(f.out, "%s: ", label)
	value, err := f.readPassword()
	fmt.Fprintln(f.out)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", strings.ToLower(label))
	}

	return string(value), nil
}
