package dtos

// MapMarker is one sighting pin on the reserve map
type MapMarker struct {
	ID       string  `json:"id"`
	Species  string  `json:"species"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	IsUrgent bool    `json:"isUrgent"`
	Time     string  `json:"time"`
	Reporter string  `json:"reporter"`
}

// MapMarkersResponse carries the map centre together with its markers
type MapMarkersResponse struct {
	Center  [2]float64  `json:"center"`
	Zoom    int         `json:"zoom"`
	Markers []MapMarker `json:"markers"`
}
