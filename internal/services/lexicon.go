package services

import "regexp"

// Lexicon tables and regex patterns used by the analyzer. Kept as data,
// separate from the traversal logic, so they can be extended (and asserted
// against in tests) without touching control flow.

// skillLexicon is the curated bilingual (Vietnamese + English) list of terms
// scanned case-insensitively against cleaned CV text.
var skillLexicon = []string{
	// Programming languages
	"javascript", "typescript", "python", "java", "golang", "go", "c#", "c++",
	"php", "ruby", "swift", "kotlin", "rust", "scala", "dart", "objective-c",

	// Frontend
	"react", "vue", "angular", "next.js", "nuxt", "svelte", "html", "css",
	"sass", "tailwind", "bootstrap", "redux", "webpack", "vite",

	// Backend / frameworks
	"node.js", "nodejs", "express", "nestjs", "spring", "spring boot",
	"django", "flask", "fastapi", "laravel", "rails", ".net", "gin", "fiber",

	// Mobile
	"react native", "flutter", "android", "ios", "xamarin",

	// Databases
	"postgresql", "postgres", "mysql", "mongodb", "redis", "elasticsearch",
	"sqlite", "oracle", "sql server", "cassandra", "dynamodb", "firebase",

	// Cloud / infra
	"aws", "azure", "gcp", "google cloud", "docker", "kubernetes", "k8s",
	"terraform", "jenkins", "gitlab ci", "github actions", "ci/cd", "nginx",
	"linux", "microservices", "serverless",

	// Tools
	"git", "jira", "confluence", "figma", "postman", "graphql", "rest api",
	"grpc", "kafka", "rabbitmq", "websocket",

	// Data / AI
	"machine learning", "deep learning", "tensorflow", "pytorch", "pandas",
	"numpy", "data analysis", "sql", "power bi", "tableau", "excel",

	// Methodologies
	"agile", "scrum", "kanban", "tdd", "oop", "design patterns", "solid",

	// Soft skills (English)
	"teamwork", "leadership", "communication", "problem solving",
	"time management", "critical thinking", "presentation", "negotiation",

	// Soft skills and domain terms (Vietnamese)
	"làm việc nhóm", "lãnh đạo", "giao tiếp", "giải quyết vấn đề",
	"quản lý thời gian", "tư duy phản biện", "thuyết trình", "đàm phán",
	"quản lý dự án", "chăm sóc khách hàng", "bán hàng", "marketing",
	"kế toán", "nhân sự", "thiết kế đồ họa", "phân tích dữ liệu",
	"kiểm thử phần mềm", "tiếng anh", "tiếng nhật", "tiếng hàn", "tiếng trung",
}

// experienceKeywords marks sentences that likely describe work history.
var experienceKeywords = []string{
	"experience", "worked", "working", "developed", "built", "managed",
	"led", "responsible", "position", "role", "company", "project",
	"kinh nghiệm", "làm việc", "phát triển", "xây dựng", "quản lý",
	"phụ trách", "đảm nhận", "vị trí", "công ty", "dự án", "chức vụ",
}

// educationKeywords marks sentences that likely describe schooling.
var educationKeywords = []string{
	"bachelor", "master", "phd", "degree", "university", "college",
	"graduated", "diploma", "certificate", "gpa", "major",
	"đại học", "cao đẳng", "thạc sĩ", "tiến sĩ", "cử nhân", "tốt nghiệp",
	"bằng cấp", "chứng chỉ", "chuyên ngành", "trường",
}

// impactKeywords marks achievement-flavored sentences for key points.
var impactKeywords = []string{
	"achievement", "achieved", "award", "improve", "improved", "increase",
	"increased", "growth", "optimize", "optimized", "reduce", "reduced",
	"responsible", "delivered", "launched", "success",
	"thành tích", "thành tựu", "giải thưởng", "cải thiện", "tăng trưởng",
	"tối ưu", "giảm", "đạt được", "hoàn thành", "triển khai",
}

// jobTechKeywords derives a requirement list from a job posting's free text.
// Shorter than the CV-side lexicon: job requirements name concrete stacks.
var jobTechKeywords = []string{
	"javascript", "typescript", "python", "java", "golang", "go", "c#",
	"php", "ruby", "react", "vue", "angular", "node.js", "nodejs",
	"spring", "django", "laravel", ".net", "flutter", "react native",
	"postgresql", "mysql", "mongodb", "redis", "sql",
	"aws", "azure", "gcp", "docker", "kubernetes", "ci/cd", "git",
	"graphql", "rest api", "kafka", "microservices",
	"agile", "scrum", "english", "tiếng anh", "excel", "figma",
	"marketing", "kế toán", "bán hàng",
}

// genericDemoSkills pads the synthesized demo CV beyond the job's own stack.
var genericDemoSkills = []string{
	"teamwork", "communication", "problem solving", "git",
}

// ocrCorrections repairs common Vietnamese OCR artifacts: diacritic-bearing
// compound words split by stray whitespace.
var ocrCorrections = []struct {
	Pattern     *regexp.Regexp
	Replacement string
}{
	{regexp.MustCompile(`(?i)đại\s+học`), "đại học"},
	{regexp.MustCompile(`(?i)cao\s+đẳng`), "cao đẳng"},
	{regexp.MustCompile(`(?i)kinh\s+nghiệm`), "kinh nghiệm"},
	{regexp.MustCompile(`(?i)công\s+ty`), "công ty"},
	{regexp.MustCompile(`(?i)làm\s+việc`), "làm việc"},
	{regexp.MustCompile(`(?i)kỹ\s+năng`), "kỹ năng"},
	{regexp.MustCompile(`(?i)tốt\s+nghiệp`), "tốt nghiệp"},
	{regexp.MustCompile(`(?i)chuyên\s+ngành`), "chuyên ngành"},
	{regexp.MustCompile(`(?i)quản\s+lý`), "quản lý"},
	{regexp.MustCompile(`(?i)phát\s+triển`), "phát triển"},
}

var (
	// whitespaceRun collapses any whitespace run into a single space.
	whitespaceRun = regexp.MustCompile(`\s+`)

	// allowedChars keeps latin letters, digits, Vietnamese diacritics and
	// basic punctuation; everything else is OCR noise.
	allowedChars = regexp.MustCompile(`[^a-zA-Z0-9À-ỹ\s.,;:()\-+/#&%@'"]`)

	// yearsWithSkill captures "3 years experience with React" and the
	// Vietnamese equivalent. The skill token is bounded to reject noise.
	yearsWithSkill = regexp.MustCompile(`(?i)\d+\+?\s*(?:years?|năm)\s*(?:of\s+)?(?:experience|kinh nghiệm)\s*(?:with|in|using|với|về)\s+([a-zA-ZÀ-ỹ0-9.#+]{2,20})`)

	// yearsPattern matches bare duration statements for the experience summary.
	yearsPattern = regexp.MustCompile(`(?i)(?:hơn|over|more than)?\s*\d+\+?\s*(?:years?|năm)(?:\s*(?:of\s+)?(?:experience|kinh nghiệm))?`)

	// yearRangePattern matches "from 2019 to 2023" / "từ 2019 đến 2023" / "2019 - 2023".
	yearRangePattern = regexp.MustCompile(`(?i)(?:from|từ)?\s*(19|20)\d{2}\s*(?:-|–|to|đến)\s*(?:(19|20)\d{2}|present|nay|hiện tại)`)

	// positionPattern matches role statements, bilingual.
	positionPattern = regexp.MustCompile(`(?i)(?:senior|junior|lead)?\s*(?:software|web|mobile|backend|frontend|fullstack|full-stack)?\s*(?:developer|engineer|designer|analyst|manager|tester|lập trình viên|kỹ sư|nhân viên|trưởng nhóm)(?:\s+(?:at|tại)\s+[A-ZÀ-Ỹ][\wÀ-ỹ .&-]{1,40})?`)

	// degreePattern matches degree plus field statements for education.
	degreePattern = regexp.MustCompile(`(?i)(?:bachelor|master|phd|b\.?s\.?c?|m\.?s\.?c?|cử nhân|thạc sĩ|tiến sĩ|kỹ sư)(?:\s*(?:of|in|chuyên ngành)?\s+[\wÀ-ỹ ]{2,40})?`)

	// institutionPattern matches university / college names.
	institutionPattern = regexp.MustCompile(`(?i)(?:university of [\wÀ-ỹ ]{2,40}|[\wÀ-ỹ ]{2,40} university|(?:trường )?đại học [\wÀ-ỹ ]{2,40}|cao đẳng [\wÀ-ỹ ]{2,40})`)

	// sentenceSplit breaks cleaned text into sentences; newlines survive
	// cleaning only as spaces, so terminators and bullets both count.
	sentenceSplit = regexp.MustCompile(`[.!?;•|]+`)
)
