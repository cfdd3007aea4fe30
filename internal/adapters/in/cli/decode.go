package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/seedy/internal/domain"
	"github.com/bnema/seedy/internal/usecase/reconcile"
)

// decodedEvent is the printed form of a decoded push event.
type decodedEvent struct {
	ID             string    `json:"id,omitempty"`
	Account        string    `json:"account,omitempty"`
	Region         string    `json:"region,omitempty"`
	RepositoryName string    `json:"repository"`
	Tag            string    `json:"tag,omitempty"`
	Digest         string    `json:"digest,omitempty"`
	ActionType     string    `json:"action_type,omitempty"`
	Result         string    `json:"result,omitempty"`
	Time           time.Time `json:"time,omitzero"`
	Actionable     bool      `json:"actionable"`
	Reference      string    `json:"reference,omitempty"`
	RegistryRef    string    `json:"registry_reference,omitempty"`
}

func newDecodedEvent(ev domain.ImagePushEvent) decodedEvent {
	out := decodedEvent{
		ID:             ev.ID,
		Account:        ev.Account,
		Region:         ev.Region,
		RepositoryName: ev.RepositoryName,
		Tag:            ev.Tag,
		Digest:         ev.Digest,
		ActionType:     ev.ActionType,
		Result:         ev.Result,
		Time:           ev.Time,
		Actionable:     ev.IsSuccessfulPush() && ev.HasTag() && ev.Digest != "",
	}
	if ref, ok := ev.Reference(domain.MatchModeRepository); ok {
		out.Reference = ref.String()
	}
	if ref, ok := ev.Reference(domain.MatchModeRegistry); ok {
		out.RegistryRef = ref.String()
	}
	return out
}

// newDecodeCmd creates the decode command.
func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <file|->",
		Short: "Decode a push event payload and print it",
		Long: `Decode an ECR image action event (the SQS message body) and print the
fields seedy would act on. Reads stdin when the argument is "-".
Nothing is contacted or changed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readPayload(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			ev, err := reconcile.NewDecoder().Decode(raw)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(newDecodedEvent(ev))
		},
	}
}

func readPayload(stdin io.Reader, arg string) ([]byte, error) {
	if arg == "-" {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return raw, nil
	}

	raw, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", arg, err)
	}
	return raw, nil
}
