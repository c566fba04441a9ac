package archive

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/posefile/errs"
)

const xmlRoot = "posefile_archive"

type xmlArchive struct {
	XMLName xml.Name   `xml:"posefile_archive"`
	Arrays  []xmlArray `xml:"array"`
}

// xmlArray keeps sizes and values as whitespace-separated text.
type xmlArray struct {
	Name  string `xml:"name,attr"`
	Sizes string `xml:"sizes"`
	Data  string `xml:"data"`
}

// xmlBackend stores the archive as a flat list of <array name="..."> elements in write
// order.
type xmlBackend struct {
	doc xmlArchive
}

func newXMLBackend(data []byte) (Backend, error) {
	b := &xmlBackend{doc: xmlArchive{XMLName: xml.Name{Local: xmlRoot}}}
	if data == nil {
		return b, nil
	}

	if err := xml.Unmarshal(data, &b.doc); err != nil {
		return nil, fmt.Errorf("%w: xml archive: %w", errs.ErrSchemaViolation, err)
	}

	return b, nil
}

func (b *xmlBackend) WriteNamed(name string, e Entry) error {
	sizes := make([]string, len(e.Sizes))
	for i, s := range e.Sizes {
		sizes[i] = strconv.Itoa(s)
	}

	values := make([]string, len(e.Data))
	for i, v := range e.Data {
		values[i] = formatFloat(v)
	}

	arr := xmlArray{Name: name, Sizes: strings.Join(sizes, " "), Data: strings.Join(values, " ")}
	for i := range b.doc.Arrays {
		if b.doc.Arrays[i].Name == name {
			b.doc.Arrays[i] = arr
			return nil
		}
	}
	b.doc.Arrays = append(b.doc.Arrays, arr)

	return nil
}

func (b *xmlBackend) ReadNamed(name string) (Entry, bool, error) {
	for _, arr := range b.doc.Arrays {
		if arr.Name != name {
			continue
		}

		e := Entry{Sizes: []int{}, Data: []float32{}}
		for _, tok := range strings.Fields(arr.Sizes) {
			s, err := strconv.Atoi(tok)
			if err != nil {
				return Entry{}, false, fmt.Errorf("%w: array %q size %q: %w", errs.ErrSchemaViolation, name, tok, err)
			}
			e.Sizes = append(e.Sizes, s)
		}

		for _, tok := range strings.Fields(arr.Data) {
			v, err := parseFloat(tok)
			if err != nil {
				return Entry{}, false, fmt.Errorf("array %q: %w", name, err)
			}
			e.Data = append(e.Data, v)
		}

		return e, true, nil
	}

	return Entry{}, false, nil
}

func (b *xmlBackend) Encode() ([]byte, error) {
	out, err := xml.MarshalIndent(b.doc, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("xml archive: %w", err)
	}

	return append([]byte(xml.Header), append(out, '\n')...), nil
}
