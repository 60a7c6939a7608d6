package model

// VisitorAnalytics is a monthly visitor count for one country and visitor type
type VisitorAnalytics struct {
	Year        int    `json:"year" bson:"year"`
	Month       int    `json:"month" bson:"month"`
	Country     string `json:"country" bson:"country"`
	VisitorType string `json:"visitor_type" bson:"visitor_type"`
	Count       int64  `json:"count" bson:"count"`
}

// AnalyticsFilter selects analytics rows. Zero values do not constrain.
type AnalyticsFilter struct {
	Year        int
	Month       int
	Country     string
	VisitorType string
	Limit       int64
}
