package report

import (
	"bytes"
	"fmt"
	"strings"

	"obracheck/internal/attendance"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

const (
	rowsPerPage = 35
	rowHeight   = 16
	firstRowY   = 740
	maxNameLen  = 40
)

// Meta describes the roster a report is printed for.
type Meta struct {
	SiteID   int64
	SiteName string
	Date     string
}

var escaper = strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)", "\r", " ", "\n", " ")

// RenderPDF prints the roster as an A4 PDF 1.4 document, rowsPerPage records
// per page, with the status totals after the last record.
func RenderPDF(meta Meta, roster attendance.Roster) ([]byte, error) {
	pages := paginate(roster, rowsPerPage)

	streams := make([]string, len(pages))
	offset := 0
	for i, rows := range pages {
		stream, err := pageStream(meta, rows, offset, i+1, len(pages), i == len(pages)-1, roster)
		if err != nil {
			return nil, err
		}
		streams[i] = stream
		offset += len(rows)
	}

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}

	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n", strings.Join(kids, " "), len(pages)),
		"3 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>\nendobj\n",
	}
	for i, stream := range streams {
		pageObj, contentObj := 4+2*i, 5+2*i
		objects = append(objects,
			fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>\nendobj\n", pageObj, contentObj),
			fmt.Sprintf("%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", contentObj, len(stream), stream),
		)
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

func paginate(roster attendance.Roster, size int) []attendance.Roster {
	if len(roster) == 0 {
		return []attendance.Roster{nil}
	}
	var pages []attendance.Roster
	for start := 0; start < len(roster); start += size {
		end := start + size
		if end > len(roster) {
			end = len(roster)
		}
		pages = append(pages, roster[start:end])
	}
	return pages
}

func pageStream(meta Meta, rows attendance.Roster, offset, page, total int, last bool, all attendance.Roster) (string, error) {
	var b strings.Builder
	var err error
	text := func(size, x, y int, s string) {
		if err != nil {
			return
		}
		var encoded string
		encoded, err = pdfText(s)
		fmt.Fprintf(&b, "BT /F1 %d Tf 1 0 0 1 %d %d Tm (%s) Tj ET\n", size, x, y, encoded)
	}

	text(14, 50, 800, "Registro de asistencia")
	text(10, 50, 782, fmt.Sprintf("Obra: %s (#%d)    Fecha: %s", meta.SiteName, meta.SiteID, meta.Date))

	headerY := firstRowY + rowHeight + 4
	text(10, 50, headerY, "#")
	text(10, 80, headerY, "Trabajador")
	text(10, 330, headerY, "CI")
	text(10, 440, headerY, "Estado")

	y := firstRowY
	for i, rec := range rows {
		text(10, 50, y, fmt.Sprintf("%d", offset+i+1))
		text(10, 80, y, truncate(rec.WorkerName, maxNameLen))
		text(10, 330, y, rec.CI)
		text(10, 440, y, rec.Status.Label())
		y -= rowHeight
	}

	if last {
		y -= rowHeight
		counts := all.CountByStatus()
		text(11, 50, y, fmt.Sprintf("Total: %d", len(all)))
		for _, s := range attendance.Statuses {
			y -= rowHeight
			text(10, 50, y, fmt.Sprintf("%s: %d", s.Label(), counts[s]))
		}
	}

	text(9, 50, 40, fmt.Sprintf("Página %d / %d", page, total))
	return strings.TrimSuffix(b.String(), "\n"), err
}

// pdfText converts s to the WinAnsi bytes Helvetica expects and escapes it for
// a literal string.
func pdfText(s string) (string, error) {
	encoded, err := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()).String(s)
	if err != nil {
		return "", err
	}
	return escaper.Replace(encoded), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
