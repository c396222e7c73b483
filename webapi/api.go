package webapi

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"yu-val-weiss/tbeval/app"
	"yu-val-weiss/tbeval/eval"
	"yu-val-weiss/tbeval/nlp/format/simpleparse"

	"github.com/gonuts/commander"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

var listenAddr string

type formatRequest struct {
	Words []string `json:"words"`
}

type formatResponse struct {
	Results []WordResult `json:"results"`
}

type evalRequest struct {
	Corpus   string `json:"corpus"`
	NFC      bool   `json:"nfc"`
	Repeated bool   `json:"repeated"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		log.Printf("encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotInitialized):
		return http.StatusServiceUnavailable
	case errors.Is(err, simpleparse.ErrMalformedLine):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func handleFormat(w http.ResponseWriter, r *http.Request) {
	var body formatRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Words) == 0 {
		writeError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'words' list")
		return
	}
	results, err := FormatWords(body.Words)
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, formatResponse{Results: results})
}

func handleEval(w http.ResponseWriter, r *http.Request) {
	var body evalRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "body must be JSON with a 'corpus' field")
		return
	}
	report, err := EvaluateCorpus(body.Corpus, body.NFC)
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report.Summary(eval.WriteOptions{RepeatedOnly: body.Repeated}))
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, r.Method+" not allowed on "+r.URL.Path)
}

func handleTables(w http.ResponseWriter, r *http.Request) {
	analyzerLock.Lock()
	c := tables
	analyzerLock.Unlock()
	if c == nil {
		writeError(w, http.StatusServiceUnavailable, ErrNotInitialized.Error())
		return
	}
	writeJSON(w, http.StatusOK, c)
}

var routes = []struct {
	path    string
	method  string
	handler http.HandlerFunc
}{
	{"/format", http.MethodPost, handleFormat},
	{"/eval", http.MethodPost, handleEval},
	{"/tables", http.MethodGet, handleTables},
}

// NewHandler routes the API endpoints behind a CORS policy allowing any
// origin to GET and POST. Any other method on a known path gets 405.
func NewHandler() http.Handler {
	router := mux.NewRouter()
	api := router.PathPrefix("/tbeval").Subrouter()
	for _, route := range routes {
		api.HandleFunc(route.path, route.handler).Methods(route.method)
	}
	// catch-alls go last; mux drops a method mismatch once a later path fails
	for _, route := range routes {
		api.HandleFunc(route.path, methodNotAllowed)
	}
	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)
}

func APIConfigOut() {
	log.Println("Configuration")
	log.Printf("Dictionary:\t\t%s", app.DictFile)
	if app.TablesFile != "" {
		log.Printf("Tables:\t\t%s", app.TablesFile)
	} else {
		log.Printf("Tables:\t\tbuilt-in")
	}
	log.Printf("Indices:\t\t%v", app.AddIndices)
	log.Printf("Address:\t\t%s", listenAddr)
	log.Println()
}

func API(cmd *commander.Command, args []string) error {
	if err := app.VerifyFlags(cmd, []string{"dict"}); err != nil {
		return err
	}
	APIConfigOut()
	APIInitialize()

	server := &http.Server{
		Addr:              listenAddr,
		Handler:           NewHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	log.Println("Listening on", listenAddr)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Println("Server stopped")
	return nil
}

func APICmd() *commander.Command {
	cmd := &commander.Command{
		Run:       API,
		UsageLine: "api <file options>",
		Short:     "serve treebank formatting and evaluation over HTTP",
		Long: `
serve treebank formatting and evaluation over HTTP

	$ ./tbeval api -dict <dictionary file> [-tables <tables.yaml>] [-addr :8000]

Endpoints:

	POST /tbeval/format	{"words": ["..."]}
	POST /tbeval/eval	{"corpus": "surface=expected\n..."}
	GET  /tbeval/tables

`,
		Flag: *flag.NewFlagSet("api", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&app.DictFile, "dict", "", "Analysis dictionary (.yaml or compiled .msgpack)")
	cmd.Flag.StringVar(&app.TablesFile, "tables", "", "Replacement and skip tables (YAML); built-in if unset")
	cmd.Flag.BoolVar(&app.AddIndices, "indices", true, "Prefix formatted groups with their 1-based index")
	cmd.Flag.StringVar(&listenAddr, "addr", ":8000", "Listen address")
	return cmd
}

func AllCommands() *commander.Command {
	return &commander.Command{
		UsageLine:   "api",
		Short:       "HTTP server commands",
		Subcommands: []*commander.Command{APICmd()},
	}
}
