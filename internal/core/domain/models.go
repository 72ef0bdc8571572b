package domain

import "time"

// Post represents one submission fetched from a source community.
// Immutable once fetched.
type Post struct {
	ID        string
	Source    string // community name, e.g. "AppIdeas"
	Title     string
	Body      string
	Author    string
	Score     int
	CreatedAt time.Time
	Comments  []Comment
}

// Comment is a top-level comment attached to a Post.
type Comment struct {
	Author string
	Body   string
}

// Complaint categories. The classifiers only ever emit one of these.
const (
	CategoryPrice          = "price"
	CategoryUX             = "ux"
	CategoryMissingFeature = "missing-feature"
	CategoryBug            = "bug"
	CategoryService        = "service"
	CategoryOther          = "other"
)

// Categories lists all complaint categories in declaration order.
var Categories = []string{
	CategoryPrice,
	CategoryUX,
	CategoryMissingFeature,
	CategoryBug,
	CategoryService,
	CategoryOther,
}

// Difficulty tags shared by app ideas and business ideas.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Complaint is a classified user complaint. At most one exists per source
// post id; enforced by an existence check before creation.
type Complaint struct {
	ID               string    `json:"id"`
	PostID           string    `json:"postId"`
	Source           string    `json:"source"`
	Title            string    `json:"title"`
	Body             string    `json:"body"`
	Author           string    `json:"author"`
	Score            int       `json:"score"`
	CreatedAt        time.Time `json:"createdAt"`
	Category         string    `json:"category"`
	PainLevel        int       `json:"painLevel"` // 1-5
	ExtractedProblem string    `json:"extractedProblem"`
	AnalyzedAt       time.Time `json:"analyzedAt"`
}

// AppIdea is a post judged to contain a viable app idea. Bookmarked is the
// only field that may change after creation.
type AppIdea struct {
	ID               string    `json:"id"`
	PostID           string    `json:"postId"`
	Source           string    `json:"source"`
	OriginalTitle    string    `json:"originalTitle"`
	OriginalBody     string    `json:"originalBody"`
	Author           string    `json:"author"`
	Score            int       `json:"score"`
	AppName          string    `json:"appName"`
	ProblemSummary   string    `json:"problemSummary"`
	ProposedSolution string    `json:"proposedSolution"`
	TargetUsers      string    `json:"targetUsers"`
	KeyFeatures      string    `json:"keyFeatures"`
	TechStack        string    `json:"techStack"`
	Difficulty       string    `json:"difficulty"`
	ViabilityScore   int       `json:"viabilityScore"` // 0-10
	Reasoning        string    `json:"reasoning"`
	Bookmarked       bool      `json:"bookmarked"`
	PostCreatedAt    time.Time `json:"postCreatedAt"`
	AnalyzedAt       time.Time `json:"analyzedAt"`
}

// BusinessIdea is synthesized from a cluster of complaints sharing one
// category. Immutable once created.
type BusinessIdea struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	ProblemStatement string    `json:"problemStatement"`
	Solution         string    `json:"solution"`
	TargetMarket     string    `json:"targetMarket"`
	Difficulty       string    `json:"difficulty"`
	PotentialScore   int       `json:"potentialScore"` // 1-10
	SourceComplaints []string  `json:"sourceComplaints"`
	CreatedAt        time.Time `json:"createdAt"`
}
