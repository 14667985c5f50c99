// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package ergast

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/apex/log"
	"github.com/go-playground/validator/v10"

	"github.com/staranto/f1ctlgo/internal/fault"
)

var validate = newValidator()

// newValidator reports fields by their API key names so that a failure reads
// like MRData.RaceTable.Races[3].Circuit.circuitId.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ParseCircuits decodes a circuits listing.
func ParseCircuits(data []byte) ([]Circuit, error) {
	var resp circuitsResponse
	if err := decode(data, &resp, "parse circuits"); err != nil {
		return nil, err
	}

	circuits := resp.MRData.CircuitTable.Circuits
	log.Debugf("parsed %d circuits", len(circuits))
	return circuits, nil
}

// ParseSeason decodes a season schedule. Races keep the order of the payload.
func ParseSeason(data []byte) (Season, error) {
	var resp seasonResponse
	if err := decode(data, &resp, "parse season"); err != nil {
		return Season{}, err
	}

	table := resp.MRData.RaceTable
	log.Debugf("parsed season %s with %d races", table.Season, len(table.Races))
	return Season{Year: table.Season, Races: table.Races}, nil
}

func decode(data []byte, v any, op string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fault.New(fault.KindMalformed, op, "", err)
	}
	if err := validate.Struct(v); err != nil {
		return fault.New(fault.KindMalformed, op, "", describe(err))
	}
	return nil
}

// describe flattens validator errors into one message naming every missing
// field.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		// Drop the root struct name; the envelope is always the first segment.
		ns := fe.Namespace()
		if i := strings.Index(ns, "."); i >= 0 {
			ns = ns[i+1:]
		}
		if fe.Tag() == "required" {
			missing = append(missing, ns)
		} else {
			missing = append(missing, fmt.Sprintf("%s (%s)", ns, fe.Tag()))
		}
	}
	return fmt.Errorf("missing required field(s): %s", strings.Join(missing, ", "))
}
