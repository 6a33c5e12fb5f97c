package breach

// Breach is one entry of the breachedaccount response.
type Breach struct {
	Name         string   `json:"Name"`
	Title        string   `json:"Title"`
	Domain       string   `json:"Domain"`
	BreachDate   string   `json:"BreachDate"`
	AddedDate    string   `json:"AddedDate,omitempty"`
	ModifiedDate string   `json:"ModifiedDate,omitempty"`
	PwnCount     int      `json:"PwnCount"`
	Description  string   `json:"Description"`
	LogoPath     string   `json:"LogoPath,omitempty"`
	DataClasses  []string `json:"DataClasses"`
	IsVerified   bool     `json:"IsVerified"`
	IsFabricated bool     `json:"IsFabricated,omitempty"`
	IsSensitive  bool     `json:"IsSensitive,omitempty"`
	IsRetired    bool     `json:"IsRetired,omitempty"`
	IsSpamList   bool     `json:"IsSpamList,omitempty"`
}

// Outcome enum
type Outcome string

const (
	OutcomeFound    Outcome = "found"
	OutcomeNotFound Outcome = "not_found"
	OutcomeError    Outcome = "error"
)

// Result is the outcome of a single lookup. Breaches is only set for
// OutcomeFound, StatusCode and Message only for OutcomeError.
type Result struct {
	Outcome    Outcome  `json:"outcome"`
	Breaches   []Breach `json:"breaches,omitempty"`
	StatusCode int      `json:"status_code,omitempty"`
	Message    string   `json:"message,omitempty"`
}

func Found(breaches []Breach) Result {
	return Result{Outcome: OutcomeFound, Breaches: breaches}
}

func NotFound() Result {
	return Result{Outcome: OutcomeNotFound}
}

func Failed(statusCode int, message string) Result {
	return Result{Outcome: OutcomeError, StatusCode: statusCode, Message: message}
}

// Err returns an *UpstreamError for OutcomeError and nil otherwise.
func (r Result) Err() error {
	if r.Outcome != OutcomeError {
		return nil
	}
	return &UpstreamError{StatusCode: r.StatusCode, Body: r.Message}
}

// Row is the fixed-column view of a breach shared by every renderer.
type Row struct {
	Name        string   `json:"name"`
	BreachDate  string   `json:"breach_date"`
	IsVerified  bool     `json:"is_verified"`
	DataClasses []string `json:"data_classes"`
}

// ChartPoint pairs a breach name with its number of data classes.
type ChartPoint struct {
	Name  string
	Count int
}
