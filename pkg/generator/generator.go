// Package generator serializes export records back into GEDCOM text. It is a
// pure formatter: no validation happens here, input is assumed to satisfy the
// structural invariants already.
package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/gedkit/gedkit/pkg/exporter"
	"github.com/gedkit/gedkit/pkg/model"
	"github.com/gedkit/gedkit/pkg/tree"
)

// gedcomVersion is the dialect written into generated headers.
const gedcomVersion = "5.5.1"

// Options controls header content and timestamping.
type Options struct {
	// AppName is written to the header SOUR line. Defaults to "gedkit".
	AppName string

	// AppVersion is written under SOUR when non-empty.
	AppVersion string

	// Now supplies the generation timestamp; defaults to time.Now.
	// Injected so exports are reproducible in tests.
	Now func() time.Time
}

func (o Options) appName() string {
	if o.AppName == "" {
		return "gedkit"
	}
	return o.AppName
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// Generate renders a complete GEDCOM file: header, individual records, family
// records, trailer. Lines use "\n" endings and UTF-8 text.
func Generate(individuals []exporter.IndividualRecord, families []exporter.FamilyRecord, opts Options) string {
	var b strings.Builder

	writeHeader(&b, opts)
	for _, ind := range individuals {
		writeIndividual(&b, ind)
	}
	for _, fam := range families {
		writeFamily(&b, fam)
	}
	line(&b, 0, "", tree.TagTrailer, "")

	return b.String()
}

func writeHeader(b *strings.Builder, opts Options) {
	line(b, 0, "", tree.TagHeader, "")
	line(b, 1, "", "SOUR", opts.appName())
	if opts.AppVersion != "" {
		line(b, 2, "", "VERS", opts.AppVersion)
	}
	line(b, 1, "", tree.TagDate, FormatDate(opts.now()))
	line(b, 1, "", "GEDC", "")
	line(b, 2, "", "VERS", gedcomVersion)
	line(b, 2, "", "FORM", "LINEAGE-LINKED")
	line(b, 1, "", "CHAR", "UTF-8")
}

func writeIndividual(b *strings.Builder, ind exporter.IndividualRecord) {
	p := ind.Person

	line(b, 0, ind.XRef, tree.TagIndividual, "")
	line(b, 1, "", tree.TagName, formatName(p))
	if p.AlternateName != "" {
		line(b, 1, "", tree.TagName, p.AlternateName)
	}
	if p.Gender != "" {
		line(b, 1, "", tree.TagSex, p.Gender)
	}
	if p.BirthDate != nil || p.BirthPlace != "" {
		line(b, 1, "", tree.TagBirth, "")
		if p.BirthDate != nil {
			line(b, 2, "", tree.TagDate, FormatDate(*p.BirthDate))
		}
		if p.BirthPlace != "" {
			line(b, 2, "", tree.TagPlace, p.BirthPlace)
		}
	}
	if !p.Living {
		line(b, 1, "", tree.TagDeath, "")
		if p.DeathDate != nil {
			line(b, 2, "", tree.TagDate, FormatDate(*p.DeathDate))
		}
	}
}

func writeFamily(b *strings.Builder, fam exporter.FamilyRecord) {
	line(b, 0, fam.XRef, tree.TagFamily, "")
	if fam.HusbandXRef != "" {
		line(b, 1, "", tree.TagHusband, pointer(fam.HusbandXRef))
	}
	if fam.WifeXRef != "" {
		line(b, 1, "", tree.TagWife, pointer(fam.WifeXRef))
	}
	for _, child := range fam.ChildXRefs {
		line(b, 1, "", tree.TagChild, pointer(child))
	}
	if fam.MarriageDate != nil {
		line(b, 1, "", tree.TagMarriage, "")
		line(b, 2, "", tree.TagDate, FormatDate(*fam.MarriageDate))
	}
	if fam.DivorceDate != nil {
		line(b, 1, "", tree.TagDivorce, "")
		line(b, 2, "", tree.TagDate, FormatDate(*fam.DivorceDate))
	}
}

// line writes one GEDCOM line: "LEVEL [@XREF@] TAG [VALUE]".
func line(b *strings.Builder, level int, xref, tag, value string) {
	fmt.Fprintf(b, "%d", level)
	if xref != "" {
		b.WriteString(" ")
		b.WriteString(pointer(xref))
	}
	b.WriteString(" ")
	b.WriteString(tag)
	if value != "" {
		b.WriteString(" ")
		b.WriteString(value)
	}
	b.WriteString("\n")
}

func pointer(xref string) string {
	return "@" + xref + "@"
}

// FormatDate renders a time as a GEDCOM date ("2 JAN 2006").
func FormatDate(t time.Time) string {
	return strings.ToUpper(t.Format("2 Jan 2006"))
}

func formatName(p model.Person) string {
	switch {
	case p.LastName == "":
		return p.FirstName
	case p.FirstName == "":
		return "/" + p.LastName + "/"
	default:
		return p.FirstName + " /" + p.LastName + "/"
	}
}
