package main

import (
	"fmt"
	"io"

	"github.com/tidwall/sjson"

	"github.com/dshills/mindcmd/internal/command"
)

// resultJSON encodes a dispatch result as one JSON object.
func resultJSON(input string, r command.Result) (string, error) {
	doc := "{}"
	var err error
	set := func(path string, value any) {
		if err == nil {
			doc, err = sjson.Set(doc, path, value)
		}
	}

	set("input", input)
	set("success", r.Success)
	if r.Message != "" {
		set("message", r.Message)
	}
	if r.Error != "" {
		set("error", r.Error)
	}
	if r.Data != nil {
		set("data", dataValue(r.Data))
	}
	return doc, err
}

// dataValue converts result data into something JSON can encode.
func dataValue(data any) any {
	switch v := data.(type) {
	case command.Args:
		return v.Map()
	case command.Value:
		return v.Interface()
	default:
		return v
	}
}

// printResult writes r as text or JSON. It returns errCommandFailed when r
// is a failure.
func printResult(w io.Writer, jsonOut bool, input string, r command.Result) error {
	if jsonOut {
		doc, err := resultJSON(input, r)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, doc)
	} else {
		fmt.Fprintln(w, textResult(r))
	}

	if !r.Success {
		return errCommandFailed
	}
	return nil
}

func textResult(r command.Result) string {
	if args, ok := r.Data.(command.Args); ok && r.Success && len(args) > 0 {
		return r.String() + " " + args.Format()
	}
	return r.String()
}
