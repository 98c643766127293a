package server

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	sdderrors "github.com/matzehuels/sddkit/pkg/errors"
	"github.com/matzehuels/sddkit/pkg/pipeline"
	"github.com/matzehuels/sddkit/pkg/render/dot"
	"github.com/matzehuels/sddkit/pkg/sdd"
	"github.com/matzehuels/sddkit/pkg/weights"
	"github.com/matzehuels/sddkit/pkg/wmc"
)

// countResponse is the JSON body of a successful count.
type countResponse struct {
	Value  float64 `json:"value"`
	Format string  `json:"format"`
	Cached bool    `json:"cached"`
}

var contentTypes = map[string]string{
	pipeline.FormatDOT: "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG: "image/svg+xml",
	pipeline.FormatPNG: "image/png",
	pipeline.FormatPDF: "application/pdf",
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, sdderrors.New(sdderrors.ErrCodeInvalidInput, "request body is empty")
	}
	return data, nil
}

// renderInput is the decoded body of a render request.
type renderInput struct {
	sdd, vtree []byte
	// name of the diagram source in error messages
	name string
}

// readRenderInput accepts either a plain .sdd body or a multipart form with
// an "sdd" part and an optional "vtree" part. Parts may be files or fields.
func readRenderInput(w http.ResponseWriter, r *http.Request) (renderInput, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		data, err := readBody(w, r)
		return renderInput{sdd: data, name: "body"}, err
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := r.ParseMultipartForm(MaxBodyBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return renderInput{}, err
		}
		return renderInput{}, sdderrors.Wrap(sdderrors.ErrCodeInvalidInput, err, "malformed multipart body")
	}
	in := renderInput{name: "sdd"}
	var err error
	if in.sdd, err = formPart(r, "sdd"); err != nil {
		return renderInput{}, err
	}
	if len(in.sdd) == 0 {
		return renderInput{}, sdderrors.New(sdderrors.ErrCodeInvalidInput, "multipart body has no sdd part")
	}
	if in.vtree, err = formPart(r, "vtree"); err != nil {
		return renderInput{}, err
	}
	return in, nil
}

// formPart returns the named file part, falling back to the form field.
func formPart(r *http.Request, name string) ([]byte, error) {
	f, _, err := r.FormFile(name)
	if errors.Is(err, http.ErrMissingFile) {
		return []byte(r.FormValue(name)), nil
	}
	if err != nil {
		return nil, sdderrors.Wrap(sdderrors.ErrCodeInvalidInput, err, "read %s part", name)
	}
	defer f.Close()
	return io.ReadAll(f)
}

// boolParam reads a boolean query parameter; a bare "?merge" counts as true.
func boolParam(r *http.Request, name string) (bool, error) {
	q := r.URL.Query()
	if !q.Has(name) {
		return false, nil
	}
	v := q.Get(name)
	if v == "" {
		return true, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, sdderrors.New(sdderrors.ErrCodeInvalidInput, "query parameter %s=%q is not a boolean", name, v)
	}
	return b, nil
}

func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	format, err := wmc.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	table, err := weights.ParsePairs(r.URL.Query()["w"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	refresh, err := boolParam(r, "refresh")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Count(r.Context(), pipeline.CountRequest{
		Data:    data,
		Name:    "body",
		Format:  format,
		Weights: table,
		Refresh: refresh,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Value: res.Value, Format: string(res.Format), Cached: res.Cached})
}

// renderFormat reads the output format, defaulting to DOT.
func renderFormat(r *http.Request) (string, error) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatDOT
	}
	return format, pipeline.ValidateFormat(format)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format, err := renderFormat(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	merge, err := boolParam(r, "merge")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ids, err := boolParam(r, "ids")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	in, err := readRenderInput(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var vt *sdd.Vtree
	if len(in.vtree) > 0 {
		if vt, err = sdd.ReadVtree(bytes.NewReader(in.vtree), "vtree"); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	root, err := sdd.Read(bytes.NewReader(in.sdd), in.name, vt)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	src, err := pipeline.DOT(root, dot.DAGOptions{Labels: s.opts.Labels, ShowIDs: ids, MergeLeaves: merge})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeArtifact(w, r, src, format)
}

func (s *Server) handleRenderVtree(w http.ResponseWriter, r *http.Request) {
	format, err := renderFormat(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ids, err := boolParam(r, "ids")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	vt, err := sdd.ReadVtree(bytes.NewReader(data), "body")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	src, err := pipeline.TreeDOT(vt, dot.TreeOptions{Labels: s.opts.Labels, ShowIDs: ids})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeArtifact(w, r, src, format)
}

func (s *Server) writeArtifact(w http.ResponseWriter, r *http.Request, src, format string) {
	data, _, err := s.runner.Render(r.Context(), src, format, 0)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
