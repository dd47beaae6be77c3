package corpus

import (
	"fmt"
	"regexp"
	"strings"
)

// FileMeta is what a corpus file name encodes:
//
//	name     := title [ "[" sourceID "]" ] ext
//	datePhr  := day " de " month " de " year   (anywhere in title)
type FileMeta struct {
	Name     string
	Title    string
	SourceID string
	// Date is DD/MM/YY, or nil when the title carries no date phrase.
	Date *string
}

var (
	bracketToken  = regexp.MustCompile(`\[([^\[\]]*)\]`)
	trailingToken = regexp.MustCompile(`\[[^\[\]]*\]$`)
	datePhrase    = regexp.MustCompile(`(?i)(\d{1,2}) de (enero|febrero|marzo|abril|mayo|junio|julio|agosto|septiembre|octubre|noviembre|diciembre) de (\d{4})`)
)

var months = map[string]string{
	"enero":      "01",
	"febrero":    "02",
	"marzo":      "03",
	"abril":      "04",
	"mayo":       "05",
	"junio":      "06",
	"julio":      "07",
	"agosto":     "08",
	"septiembre": "09",
	"octubre":    "10",
	"noviembre":  "11",
	"diciembre":  "12",
}

// ParseFileName derives display metadata from a corpus file name. It never
// fails: missing pieces come back empty or nil.
func ParseFileName(name, ext string) FileMeta {
	title := cleanTitle(name, ext)
	return FileMeta{
		Name:     name,
		Title:    title,
		SourceID: sourceID(name),
		Date:     extractDate(title),
	}
}

// sourceID returns the content of the last bracket pair in name.
func sourceID(name string) string {
	m := bracketToken.FindAllStringSubmatch(name, -1)
	if len(m) == 0 {
		return ""
	}
	return m[len(m)-1][1]
}

func cleanTitle(name, ext string) string {
	t := strings.ReplaceAll(name, "_", " ")
	t = strings.TrimSuffix(t, strings.ReplaceAll(ext, "_", " "))
	t = trailingToken.ReplaceAllString(t, "")
	return strings.TrimSpace(t)
}

func extractDate(title string) *string {
	m := datePhrase.FindStringSubmatch(title)
	if m == nil {
		return nil
	}
	day := m[1]
	if len(day) == 1 {
		day = "0" + day
	}
	month := months[strings.ToLower(m[2])]
	d := fmt.Sprintf("%s/%s/%s", day, month, m[3][2:])
	return &d
}
