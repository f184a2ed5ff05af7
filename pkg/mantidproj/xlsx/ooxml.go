package xlsx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// errPartNotFound indicates a part is missing from the workbook package.
var errPartNotFound = errors.New("package part not found")

// Relationship type suffixes followed when locating charts.
const (
	relWorksheet = "/worksheet"
	relDrawing   = "/drawing"
	relChart     = "/chart"
)

// ooxmlPackage reads the parts of an xlsx zip package by name.
type ooxmlPackage struct {
	parts map[string]*zip.File
}

func newPackage(r *zip.Reader) *ooxmlPackage {
	p := &ooxmlPackage{parts: make(map[string]*zip.File, len(r.File))}
	for _, f := range r.File {
		p.parts[f.Name] = f
	}
	return p
}

// read returns the content of part.
func (p *ooxmlPackage) read(part string) ([]byte, error) {
	f, ok := p.parts[part]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errPartNotFound, part)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// relationship is one entry of a .rels part. target is a package path.
type relationship struct {
	id     string
	kind   string
	target string
}

// relationships returns the relationships of part with their targets
// resolved against the part's directory.
func (p *ooxmlPackage) relationships(part string) ([]relationship, error) {
	data, err := p.read(relsPart(part))
	if err != nil {
		return nil, err
	}
	rels, err := parseRelationships(data)
	if err != nil {
		return nil, err
	}
	dir := path.Dir(part)
	for i := range rels {
		rels[i].target = resolvePart(dir, rels[i].target)
	}
	return rels, nil
}

// relsPart names the relationships part of part, e.g.
// "xl/drawings/drawing1.xml" -> "xl/drawings/_rels/drawing1.xml.rels".
func relsPart(part string) string {
	return path.Join(path.Dir(part), "_rels", path.Base(part)+".rels")
}

// resolvePart resolves a relationship target against dir.
func resolvePart(dir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(dir, target)
}

type relationshipsXML struct {
	Relationships []struct {
		ID     string `xml:"Id,attr"`
		Type   string `xml:"Type,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

// parseRelationships decodes a .rels part. Targets are left as written.
func parseRelationships(data []byte) ([]relationship, error) {
	var doc relationshipsXML
	if err := xml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		return nil, err
	}
	rels := make([]relationship, 0, len(doc.Relationships))
	for _, r := range doc.Relationships {
		rels = append(rels, relationship{id: r.ID, kind: r.Type, target: r.Target})
	}
	return rels, nil
}

// ofKind returns the relationships whose type ends in suffix.
func ofKind(rels []relationship, suffix string) []relationship {
	var out []relationship
	for _, r := range rels {
		if strings.HasSuffix(r.kind, suffix) {
			out = append(out, r)
		}
	}
	return out
}

type workbookXML struct {
	Sheets []struct {
		Name string `xml:"name,attr"`
		RID  string `xml:"id,attr"`
	} `xml:"sheets>sheet"`
}

// workbookSheets maps the relationship ids of workbook.xml to sheet names.
func workbookSheets(data []byte) (map[string]string, error) {
	var doc workbookXML
	if err := xml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		return nil, err
	}
	sheets := make(map[string]string, len(doc.Sheets))
	for _, s := range doc.Sheets {
		if s.Name != "" && s.RID != "" {
			sheets[s.RID] = s.Name
		}
	}
	return sheets, nil
}

// elementText returns the character data of the element whose start tag was
// just read, including that of its descendants.
func elementText(decoder *xml.Decoder) (string, error) {
	var b strings.Builder
	for depth := 1; depth > 0; {
		token, err := decoder.Token()
		if err != nil {
			return b.String(), err
		}
		switch t := token.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return b.String(), nil
}

type xfrmXML struct {
	Off struct {
		X int64 `xml:"x,attr"`
		Y int64 `xml:"y,attr"`
	} `xml:"off"`
	Ext struct {
		CX int64 `xml:"cx,attr"`
		CY int64 `xml:"cy,attr"`
	} `xml:"ext"`
}

// decodeXfrm reads the xfrm element started by start and returns its
// position and size in pixels.
func decodeXfrm(decoder *xml.Decoder, start xml.StartElement) (left, top, width, height int) {
	var x xfrmXML
	if err := decoder.DecodeElement(&x, &start); err != nil {
		return 0, 0, 0, 0
	}
	return EMUToPixels(x.Off.X), EMUToPixels(x.Off.Y), EMUToPixels(x.Ext.CX), EMUToPixels(x.Ext.CY)
}
