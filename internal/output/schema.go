// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/apex/log"
)

const maxSchemaDepth = 2

// DumpSchema prints the sorted attribute paths of a row type, which are the
// keys accepted by --attrs, --filter and --sort.
func DumpSchema(w io.Writer, typ reflect.Type) {
	names := DumpSchemaWalker("", typ, 0)
	if len(names) == 0 {
		log.Debugf("No tags found for type: %s", typ.Name())
		return
	}

	sort.Strings(names)

	fmt.Fprintln(w, "Schema for", typ.Name(), "--")
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
}

// DumpSchemaWalker recursively walks a struct type collecting json tag names,
// dotted under their holder.
func DumpSchemaWalker(holder string, typ reflect.Type, depth int) []string {
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil
	}

	names := make([]string, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		tagValue, ok := field.Tag.Lookup("json")
		if !ok {
			continue
		}
		name := strings.Split(tagValue, ",")[0]
		if name == "" || name == "-" {
			continue
		}
		if holder != "" {
			name = holder + "." + name
		}

		ft := field.Type
		for ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct && depth < maxSchemaDepth {
			names = append(names, DumpSchemaWalker(name, ft, depth+1)...)
			continue
		}
		names = append(names, name)
	}

	return names
}
