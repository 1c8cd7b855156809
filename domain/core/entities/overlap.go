package entities

// PathNode is one hop of an overlap path
type PathNode struct {
	Label string `json:"label"`
	Name  string `json:"name"`
}

// OverlapRow is one colleague match returned by the overlap query. The path
// runs person -> experience -> ministry -> experience -> person.
type OverlapRow struct {
	MatchedPerson string     `json:"name"`
	Ministry      string     `json:"ministry"`
	OverlapStart  string     `json:"overlap_start"`
	OverlapEnd    string     `json:"overlap_end"`
	Path          []PathNode `json:"path"`
}

// PathStart returns the name on the first person node of the path
func (r OverlapRow) PathStart() string {
	if len(r.Path) == 0 {
		return ""
	}
	return r.Path[0].Name
}

// PathEnd returns the name on the last person node of the path
func (r OverlapRow) PathEnd() string {
	if len(r.Path) == 0 {
		return r.MatchedPerson
	}
	return r.Path[len(r.Path)-1].Name
}
