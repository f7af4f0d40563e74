package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/johnquangdev/meetmate/errors"
	"github.com/johnquangdev/meetmate/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meetmate/internal/adapter/presenter"
)

func newTranscriptCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcript",
		Short: "Read or feed meeting transcripts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list <meeting-id>",
		Short: "Print the transcript of a meeting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			chunks, err := app.Transcripts.ListChunks(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return s.print(chunks, func(w io.Writer) error {
				return presenter.Transcript(w, chunks)
			})
		},
	})

	var (
		file  string
		chunk meeting.IngestChunk
	)
	ingest := &cobra.Command{
		Use:   "ingest <meeting-id>",
		Short: "Push transcript segments to a live meeting",
		Long: `Push transcript segments by hand. The meeting must be in progress.

Segments come from --file (a JSON array of chunks, or {"chunks": [...]};
"-" reads stdin) or from a single --speaker/--text pair.

Examples:
  meetmate transcript ingest <id> --speaker "Lan Pham" --text "Kick-off" --start 0 --end 4.5
  meetmate transcript ingest <id> --file chunks.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req meeting.IngestTranscriptRequest
			if file != "" {
				chunks, err := readChunks(s, file)
				if err != nil {
					return err
				}
				req.Chunks = chunks
			} else {
				req.Chunks = []meeting.IngestChunk{chunk}
			}

			app, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			stored, err := app.Transcripts.Ingest(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			return s.print(stored, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Stored %d chunks.\n", len(stored))
				return err
			})
		},
	}
	ingest.Flags().StringVarP(&file, "file", "f", "", "JSON file with chunks, - for stdin")
	ingest.Flags().StringVar(&chunk.Speaker, "speaker", "", "Speaker of a single chunk")
	ingest.Flags().StringVar(&chunk.Text, "text", "", "Text of a single chunk")
	ingest.Flags().IntVar(&chunk.ChunkIndex, "index", 0, "Chunk index of a single chunk")
	ingest.Flags().Float64Var(&chunk.StartTime, "start", 0, "Start offset in seconds")
	ingest.Flags().Float64Var(&chunk.EndTime, "end", 0, "End offset in seconds")
	ingest.MarkFlagsMutuallyExclusive("file", "text")
	cmd.AddCommand(ingest)
	return cmd
}

func readChunks(s *session, file string) ([]meeting.IngestChunk, error) {
	var (
		data []byte
		err  error
	)
	if file == "-" {
		data, err = io.ReadAll(s.deps.In)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, fmt.Errorf("reading chunks: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var chunks []meeting.IngestChunk
		if err := json.Unmarshal(data, &chunks); err != nil {
			return nil, apperrors.ErrInvalidArgument("chunks file is not valid JSON: " + err.Error())
		}
		return chunks, nil
	}
	var req meeting.IngestTranscriptRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, apperrors.ErrInvalidArgument("chunks file is not valid JSON: " + err.Error())
	}
	return req.Chunks, nil
}
