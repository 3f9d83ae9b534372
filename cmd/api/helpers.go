package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"studyhall/highlighter/internal/data"
)

type envelope map[string]any

func (app *application) writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}

	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(js); err != nil {
		return err
	}

	return nil
}

func (app *application) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)

		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")

		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)

		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")

		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)

		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)

		case errors.As(err, &invalidUnmarshalError):
			panic(err)

		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single json value")
	}

	return nil
}

func (app *application) background(fn func()) {
	app.wg.Go(func() {
		defer func() {
			pv := recover()
			if pv != nil {
				app.logger.Error(fmt.Sprintf("%v", pv))
			}
		}()

		fn()
	})
}

// readStringParam returns the named path parameter. Identifiers in this API
// are opaque strings, so only emptiness is rejected.
func (app *application) readStringParam(r *http.Request, name string) (string, error) {
	params := httprouter.ParamsFromContext(r.Context())

	value := strings.TrimSpace(params.ByName(name))
	if value == "" {
		return "", fmt.Errorf("invalid %s parameter", name)
	}
	return value, nil
}

// readChapterParams returns the notebook and chapter path parameters.
func (app *application) readChapterParams(r *http.Request) (notebookID, chapterID string, err error) {
	notebookID, err = app.readStringParam(r, "notebook_id")
	if err != nil {
		return "", "", err
	}

	chapterID, err = app.readStringParam(r, "chapter_id")
	if err != nil {
		return "", "", err
	}

	return notebookID, chapterID, nil
}

func (app *application) readPaginationParams(r *http.Request) (data.Filters, error) {
	query := r.URL.Query()

	page := 1 // default
	if query.Has("page") {
		var err error
		page, err = strconv.Atoi(query.Get("page"))
		if err != nil {
			return data.Filters{}, errors.New("page must be an integer")
		}
	}

	pageSize := 20 // default
	if query.Has("page_size") {
		var err error
		pageSize, err = strconv.Atoi(query.Get("page_size"))
		if err != nil {
			return data.Filters{}, errors.New("page_size must be an integer")
		}
	}

	return data.Filters{Page: page, PageSize: pageSize}, nil
}
