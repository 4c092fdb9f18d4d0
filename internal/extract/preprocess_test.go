package extract

import (
	"strings"
	"testing"
)

func TestClean_StripsURLsAndEmails(t *testing.T) {
	p := NewPreprocessor(0)

	got := p.Clean("Read more at https://example.com/article or mail news@example.com today.", false)
	if strings.Contains(got, "https://") {
		t.Errorf("URL not stripped: %q", got)
	}
	if strings.Contains(got, "@") {
		t.Errorf("email not stripped: %q", got)
	}
}

func TestClean_Truncates(t *testing.T) {
	p := NewPreprocessor(100)

	got := p.Clean(strings.Repeat("word ", 200), false)
	if len(got) > 100 {
		t.Errorf("input not capped: %d bytes", len(got))
	}
}

func TestClean_Lowercase(t *testing.T) {
	p := NewPreprocessor(0)

	got := p.Clean("The Bureau Reported Figures", true)
	if got != strings.ToLower(got) {
		t.Errorf("expected lowercased output, got %q", got)
	}

	kept := p.Clean("The Bureau Reported Figures", false)
	if kept == strings.ToLower(kept) {
		t.Errorf("capitalization should survive without the lowercase option")
	}
}

func TestClean_StripsHTML(t *testing.T) {
	p := NewPreprocessor(0)

	input := "<html><head><script>alert(1)</script></head><body><p>Unemployment fell to 3.5 percent.</p></body></html>"
	got := p.Clean(input, false)
	if strings.Contains(got, "<") || strings.Contains(got, "alert") {
		t.Errorf("markup or script content survived: %q", got)
	}
	if !strings.Contains(got, "Unemployment fell") {
		t.Errorf("visible text lost: %q", got)
	}
}

func TestClean_CollapsesWhitespace(t *testing.T) {
	p := NewPreprocessor(0)

	got := p.Clean("spaced    out\n\n\ttext", false)
	if strings.Contains(got, "  ") {
		t.Errorf("whitespace not collapsed: %q", got)
	}
}

func TestSplitSentences(t *testing.T) {
	sentences := SplitSentences("First sentence here. Second one follows! Is this third? Trailing fragment")
	if len(sentences) != 4 {
		t.Fatalf("expected 4 sentences, got %d: %v", len(sentences), sentences)
	}
	if sentences[0] != "First sentence here." {
		t.Errorf("unexpected first sentence: %q", sentences[0])
	}
	if sentences[3] != "Trailing fragment" {
		t.Errorf("trailing fragment lost: %q", sentences[3])
	}
}

func TestSplitSentences_DecimalsSurvive(t *testing.T) {
	sentences := SplitSentences("The rate is 3.5 percent today. It was higher before.")
	if len(sentences) != 2 {
		t.Errorf("decimal point split a sentence: %v", sentences)
	}
}

func TestWords(t *testing.T) {
	words := Words(`"Quoted," she said: done!`)
	want := []string{"Quoted", "she", "said", "done"}
	if len(words) != len(want) {
		t.Fatalf("expected %v, got %v", want, words)
	}
	for i := range want {
		if words[i] != want[i] {
			t.Errorf("word %d: expected %q, got %q", i, want[i], words[i])
		}
	}
}

func TestIsStopword(t *testing.T) {
	if !IsStopword("The") {
		t.Errorf("case-insensitive stopword check failed")
	}
	if IsStopword("unemployment") {
		t.Errorf("content word flagged as stopword")
	}
}
