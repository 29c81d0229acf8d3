// Package serve exposes target resolution, motif queries, and export
// over a stdio NDJSON loop and a websocket handler, for embedding
// hosts that keep the rendering side in another process.
package serve

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rcsb/molpreset/pkg/assembly"
	"github.com/rcsb/molpreset/pkg/export"
	"github.com/rcsb/molpreset/pkg/fetch"
	"github.com/rcsb/molpreset/pkg/logging"
	"github.com/rcsb/molpreset/pkg/motif"
	"github.com/rcsb/molpreset/pkg/preset"
)

// Version is the server protocol version.
const Version = "1.0.0"

// Server answers resolution requests. The fetcher is optional: with
// one configured, resolve requests get assembly inference backed by
// the entry's real generation table and export requests work; without
// it, inference falls back to the default assembly and export fails.
type Server struct {
	fetcher *fetch.Client
	encoder *json.Encoder
	decoder *json.Decoder
}

// NewServer creates a stdio server over the given streams.
func NewServer(fetcher *fetch.Client, in io.Reader, out io.Writer) *Server {
	return &Server{
		fetcher: fetcher,
		encoder: json.NewEncoder(out),
		decoder: json.NewDecoder(bufio.NewReader(in)),
	}
}

// Run reads requests until the input closes, the context cancels, or
// a close request arrives.
func (s *Server) Run(ctx context.Context) error {
	s.sendReady()

	reqChan := make(chan Request, 1)
	errChan := make(chan error, 1)

	go func() {
		for {
			var req Request
			if err := s.decoder.Decode(&req); err != nil {
				errChan <- err
				return
			}
			select {
			case reqChan <- req:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errChan:
			// Drain pending requests before deciding about the error.
			for {
				select {
				case req := <-reqChan:
					if s.process(ctx, req) {
						return nil
					}
				default:
					if err == io.EOF {
						return nil
					}
					s.send(Response{Type: "error", Error: "decode: " + err.Error()})
					return nil
				}
			}
		case req := <-reqChan:
			if s.process(ctx, req) {
				return nil
			}
		}
	}
}

// process handles one request; true means the server should exit.
func (s *Server) process(ctx context.Context, req Request) bool {
	resp, done := s.handle(ctx, req)
	if resp != nil {
		s.send(*resp)
	}
	return done
}

// handle answers one request. Shared by the stdio loop and the
// websocket transport.
func (s *Server) handle(ctx context.Context, req Request) (*Response, bool) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	switch req.Type {
	case "resolve":
		return s.handleResolve(ctx, req), false
	case "motif_query":
		return s.handleMotifQuery(req), false
	case "export":
		return s.handleExport(ctx, req), false
	case "close":
		return nil, true
	default:
		return fail(req, fmt.Errorf("unknown request type %q", req.Type)), false
	}
}

func (s *Server) handleResolve(ctx context.Context, req Request) *Response {
	var payload ResolvePayload
	if err := json.Unmarshal(req.Payload, &payload); err != nil {
		return fail(req, fmt.Errorf("decoding resolve payload: %w", err))
	}
	params, err := preset.UnmarshalParams(payload.Params)
	if err != nil {
		return fail(req, err)
	}

	plan, err := preset.Resolve(payload.EntryID, params, s.genTable(ctx, payload.EntryID))
	if err != nil {
		return fail(req, err)
	}
	return ok(req, plan)
}

func (s *Server) handleMotifQuery(req Request) *Response {
	var payload MotifQueryPayload
	if err := json.Unmarshal(req.Payload, &payload); err != nil {
		return fail(req, fmt.Errorf("decoding motif_query payload: %w", err))
	}

	q := motif.BuildQuery(motif.ResiduesFromTargets(payload.EntryID, payload.Targets))
	data := MotifQueryData{Query: q}
	if q == nil {
		data.Aborted = "submission rejected, see server log"
	}
	return ok(req, data)
}

func (s *Server) handleExport(ctx context.Context, req Request) *Response {
	var payload ExportPayload
	if err := json.Unmarshal(req.Payload, &payload); err != nil {
		return fail(req, fmt.Errorf("decoding export payload: %w", err))
	}
	if s.fetcher == nil {
		return fail(req, fmt.Errorf("export requires a configured fetcher"))
	}
	if len(payload.EntryIDs) == 0 {
		return fail(req, fmt.Errorf("no entry ids given"))
	}

	var a export.Archive
	for _, id := range payload.EntryIDs {
		doc, err := s.fetcher.Document(ctx, id)
		if err != nil {
			return fail(req, err)
		}
		if err := a.Add(id, doc); err != nil {
			return fail(req, err)
		}
	}

	var buf bytes.Buffer
	if err := a.Write(&buf); err != nil {
		return fail(req, err)
	}
	return ok(req, ExportData{Name: a.Name(), Data: buf.Bytes()})
}

// genTable fetches the entry's assembly-generation table for
// inference; nil (default inference) when no fetcher is configured or
// the fetch fails. A fetch failure must not fail resolution.
func (s *Server) genTable(ctx context.Context, entryID string) assembly.GenTable {
	if s.fetcher == nil {
		return nil
	}
	doc, err := s.fetcher.Document(ctx, entryID)
	if err != nil {
		logging.L().Warn("entry fetch for assembly inference failed",
			zap.String("entry_id", entryID), zap.Error(err))
		return nil
	}
	if gen := doc.AssemblyGen(); gen != nil {
		return gen
	}
	return nil
}

func (s *Server) sendReady() {
	data, _ := json.Marshal(ReadyData{Version: Version})
	s.send(Response{Success: true, Type: "ready", Data: data})
}

func (s *Server) send(resp Response) {
	if err := s.encoder.Encode(resp); err != nil {
		logging.L().Warn("writing response failed", zap.Error(err))
	}
}

func ok(req Request, body any) *Response {
	data, err := json.Marshal(body)
	if err != nil {
		return fail(req, fmt.Errorf("encoding %s response: %w", req.Type, err))
	}
	return &Response{ID: req.ID, Success: true, Type: req.Type, Data: data}
}

func fail(req Request, err error) *Response {
	return &Response{ID: req.ID, Success: false, Type: req.Type, Error: err.Error()}
}
