package services

import (
	"reflect"
	"strings"
	"testing"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "collapses whitespace runs",
			input: "hello   world\n\n\ttest",
			want:  "hello world test",
		},
		{
			name:  "repairs split Vietnamese compounds",
			input: "Tốt nghiệp đại  học Bách Khoa, 3 năm kinh   nghiệm",
			want:  "Tốt nghiệp đại học Bách Khoa, 3 năm kinh nghiệm",
		},
		{
			name:  "strips disallowed characters",
			input: "JavaScript™ and ☃ C++",
			want:  "JavaScript and C++",
		},
		{
			name:  "preserves diacritics and punctuation",
			input: "Kỹ năng: giao tiếp, làm việc nhóm (tốt).",
			want:  "Kỹ năng: giao tiếp, làm việc nhóm (tốt).",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanText(tt.input)
			if got != tt.want {
				t.Errorf("CleanText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractSkillsFromLexicon(t *testing.T) {
	text := CleanText("Thành thạo JavaScript, React và Node.js. Có kinh nghiệm làm việc nhóm và Docker.")
	skills := extractSkills(text)

	for _, want := range []string{"javascript", "react", "node.js", "docker", "làm việc nhóm"} {
		if !containsString(skills, want) {
			t.Errorf("expected skill %q in %v", want, skills)
		}
	}
}

func TestExtractSkillsYearsPattern(t *testing.T) {
	// Elixir is not in the lexicon; only the pattern can capture it.
	text := "I have 5 years of experience with Elixir. Also 2 năm kinh nghiệm với Phoenix."
	skills := extractSkills(text)

	if !containsString(skills, "elixir") {
		t.Errorf("expected pattern-captured skill 'elixir' in %v", skills)
	}
	if !containsString(skills, "phoenix") {
		t.Errorf("expected pattern-captured skill 'phoenix' in %v", skills)
	}
}

func TestExtractSkillsDeduplicatesCaseInsensitively(t *testing.T) {
	text := "PYTHON python Python and more PYTHON"
	skills := extractSkills(text)

	count := 0
	for _, s := range skills {
		if s == "python" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one 'python' entry, got %d in %v", count, skills)
	}
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	a := NewAnalyzer()
	text := "3 năm kinh nghiệm với React tại công ty FPT. Tốt nghiệp đại học Bách Khoa. Đã tối ưu hiệu năng hệ thống lên 40%."

	first := a.Analyze(text, "cv.pdf")
	second := a.Analyze(text, "cv.pdf")

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Analyze is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestExtractExperienceSentinel(t *testing.T) {
	got := extractExperience("Sở thích: đọc sách và du lịch")
	if got != experienceNotFound {
		t.Errorf("expected sentinel for text without experience, got %q", got)
	}
}

func TestExtractExperienceYearPatterns(t *testing.T) {
	text := "Backend developer with over 4 years of experience, from 2019 to 2023 at TechCorp"
	got := extractExperience(text)

	if got == experienceNotFound {
		t.Fatal("expected experience to be found")
	}
	if !strings.Contains(strings.ToLower(got), "4 years") {
		t.Errorf("expected duration in summary, got %q", got)
	}
}

func TestExtractEducationSentinel(t *testing.T) {
	got := extractEducation("Thích chơi thể thao cuối tuần")
	if got != educationNotFound {
		t.Errorf("expected sentinel for text without education, got %q", got)
	}
}

func TestExtractEducationFindsDegree(t *testing.T) {
	text := "Tốt nghiệp cử nhân Công nghệ thông tin, trường đại học Bách Khoa Hà Nội năm 2020"
	got := extractEducation(text)

	if got == educationNotFound {
		t.Fatal("expected education to be found")
	}
	if !strings.Contains(strings.ToLower(got), "đại học") {
		t.Errorf("expected institution in summary, got %q", got)
	}
}

func TestExtractKeyPointsCapped(t *testing.T) {
	sentences := []string{
		"Achieved 40% performance improvement on checkout",
		"Optimized database queries reducing load times",
		"Responsible for the payments team roadmap",
		"Improved conversion rates across all funnels",
		"Delivered six major releases on schedule here",
		"Launched the mobile app achieving strong growth",
	}
	text := strings.Join(sentences, ". ")

	points := extractKeyPoints(text)
	if len(points) > maxKeyPoints {
		t.Errorf("expected at most %d key points, got %d", maxKeyPoints, len(points))
	}
	if len(points) != maxKeyPoints {
		t.Errorf("expected cap to be reached with 6 impact sentences, got %d", len(points))
	}
}

func TestExtractKeyPointsFallbackToShortSentences(t *testing.T) {
	text := "This sentence has no special markers at all. Another plain statement about regular things. A third neutral line describing something."

	points := extractKeyPoints(text)
	if len(points) == 0 {
		t.Fatal("expected fallback key points for text without impact keywords")
	}
	for _, p := range points {
		if len(p) >= 100 {
			t.Errorf("fallback key point too long: %q", p)
		}
	}
}

func containsString(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}
