package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the
// binary, or fall back to built-in defaults.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not customised, implementations return a
	// built-in default.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next
	// access.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and
// providers.
const (
	// PromptSlideQuestions generates customisation questions from
	// exact slide text. The template expects %d (max questions) and
	// %s (slide content) placeholders.
	PromptSlideQuestions = "slide_questions"

	// PromptSlideSynthesis rewrites Q/A input into a slide title and
	// bullets. The template expects %s (global context) and %s (Q/A
	// text) placeholders.
	PromptSlideSynthesis = "slide_synthesis"
)
