package entity

import "encoding/json"

// NotRated marks a course that has not been rated yet.
const NotRated = -1.0

// Rating is the mutable rating attached to a course summary.
type Rating struct {
	Summary Summary `json:"summary"`
	Rating  float64 `json:"rating"`
}

// NewRating returns an unrated Rating for summary.
func NewRating(summary Summary) Rating {
	return Rating{Summary: summary, Rating: NotRated}
}

// IsRated reports whether a value other than NotRated has been submitted.
func (r Rating) IsRated() bool {
	return r.Rating != NotRated
}

// UnmarshalJSON defaults a missing "rating" key to NotRated.
func (r *Rating) UnmarshalJSON(data []byte) error {
	type plain Rating
	decoded := plain{Rating: NotRated}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*r = Rating(decoded)
	return nil
}
