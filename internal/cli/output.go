package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal JSON: %w", err))
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// readPayload returns arg as bytes, or stdin when arg is "-".
func readPayload(cmd *cobra.Command, arg string) ([]byte, error) {
	if arg != "-" {
		return []byte(arg), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, sysError(fmt.Errorf("reading stdin: %w", err))
	}
	return data, nil
}

// withSession opens a session, hydrates kinds and runs fn. The backend is
// detached afterwards even when fn fails.
func (a *app) withSession(cmd *cobra.Command, kinds []string, fn func(*session) error) (err error) {
	s, err := a.open()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.close(); cerr != nil && err == nil {
			err = sysError(fmt.Errorf("detaching backend: %w", cerr))
		}
	}()

	for _, kind := range kinds {
		if _, err := s.handler(kind); err != nil {
			return err
		}
	}
	if err := s.hydrate(cmd.Context(), kinds...); err != nil {
		return err
	}
	return fn(s)
}
