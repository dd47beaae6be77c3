package corpus

import (
	"fmt"
	"strings"
)

// Report is the result of checking one corpus file.
type Report struct {
	File     File
	Segments int
	// Err is set when the file could not be read or parsed; such a file is
	// skipped at search time.
	Err error
	// Issues are problems that do not stop the file from being searched.
	Issues []string
}

// OK reports whether the file has neither an error nor issues.
func (r Report) OK() bool {
	return r.Err == nil && len(r.Issues) == 0
}

// Check reads f and reports anything that would degrade its search results.
func (c *Corpus) Check(f File) Report {
	rep := Report{File: f}
	if f.Meta.SourceID == "" {
		rep.Issues = append(rep.Issues, "no [source id] in file name; video and thumbnail links will be broken")
	}

	segs, err := c.Segments(f)
	if err != nil {
		rep.Err = err
		return rep
	}
	rep.Segments = len(segs)
	if len(segs) == 0 {
		rep.Issues = append(rep.Issues, "file has no segments")
	}
	for i, s := range segs {
		if strings.TrimSpace(s.Text) == "" {
			rep.Issues = append(rep.Issues, fmt.Sprintf("segment %d has empty text", i))
		}
		if s.Start < 0 {
			rep.Issues = append(rep.Issues, fmt.Sprintf("segment %d has negative start %v", i, s.Start))
		}
	}
	return rep
}
