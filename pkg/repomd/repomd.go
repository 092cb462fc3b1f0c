// Package repomd decodes the repomd.xml metadata index of an RPM repository.
package repomd

import (
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/cperrin88/rpmsnap/pkg/errors"
)

// RepoMD is the top-level repomd.xml document.
type RepoMD struct {
	XMLName  xml.Name   `xml:"repomd"`
	Revision string     `xml:"revision"`
	Data     []FileData `xml:"data"`
}

// FileData describes one metadata file listed in repomd.xml.
type FileData struct {
	Type      string   `xml:"type,attr"`
	Checksum  Checksum `xml:"checksum"`
	Location  Location `xml:"location"`
	Timestamp int64    `xml:"timestamp"`
	Size      int64    `xml:"size"`
}

type Checksum struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type Location struct {
	Href string `xml:"href,attr"`
}

// Parse decodes repomd.xml from r.
func Parse(r io.Reader) (*RepoMD, error) {
	var md RepoMD
	if err := xml.NewDecoder(r).Decode(&md); err != nil {
		return nil, errors.Wrap(err, "failed to decode repomd.xml")
	}
	return &md, nil
}

// ParseFile decodes the repomd.xml at path.
func ParseFile(path string) (*RepoMD, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Types returns the data types listed in the index, sorted.
func (m *RepoMD) Types() []string {
	types := make([]string, 0, len(m.Data))
	for _, d := range m.Data {
		types = append(types, d.Type)
	}
	slices.Sort(types)
	return types
}

// Find returns the entry of the given type.
func (m *RepoMD) Find(dataType string) (*FileData, bool) {
	for i := range m.Data {
		if m.Data[i].Type == dataType {
			return &m.Data[i], true
		}
	}
	return nil, false
}
