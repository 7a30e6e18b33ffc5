package catalog

// Builtins returns the built-in fallback agents. They fill gaps in an
// imported catalog but never overwrite externally supplied entries with the
// same id.
func Builtins() *Catalog {
	return New(map[string]Definition{
		"fda_510k_intel_agent": {
			Name:         "510(k) Intelligence Agent",
			Model:        "gpt-4o-mini",
			SystemPrompt: "You are an FDA 510(k) analyst.",
			MaxTokens:    12000,
			Category:     "FDA 510(k)",
			Description:  "Produces 510(k) intelligence summaries and tables.",
		},
		"pdf_to_markdown_agent": {
			Name:         "PDF → Markdown Agent",
			Model:        "gemini-2.5-flash",
			SystemPrompt: "You convert PDF-extracted text into clean markdown.",
			MaxTokens:    12000,
			Category:     "Document",
			Description:  "Turns extracted PDF text into clean Markdown.",
		},
		"tw_screen_review_agent": {
			Name:         "TFDA Premarket Screen Reviewer",
			Model:        "gemini-2.5-flash",
			SystemPrompt: "You are a TFDA premarket screen reviewer.",
			MaxTokens:    12000,
			Category:     "TFDA Premarket",
			Description:  "Formal screening and gap analysis against the application and guidance.",
		},
		"tw_app_doc_helper": {
			Name:         "TFDA Application Writing Assistant",
			Model:        "gpt-4o-mini",
			SystemPrompt: "You help improve TFDA application documents.",
			MaxTokens:    12000,
			Category:     "TFDA Premarket",
			Description:  "Improves application Markdown structure and wording.",
		},
		"note_organizer": {
			Name:         "Note Organizer",
			Model:        "gpt-4o-mini",
			SystemPrompt: "You turn messy notes into structured markdown without adding facts.",
			MaxTokens:    12000,
			Category:     "Note Keeper",
			Description:  "Organizes messy notes into headed, bulleted Markdown.",
		},
		"keyword_extractor": {
			Name:         "Keyword Extractor",
			Model:        "gemini-2.5-flash",
			SystemPrompt: "You extract high-signal keywords/entities from technical notes.",
			MaxTokens:    4000,
			Category:     "Note Keeper",
			Description:  "Extracts high-signal keywords and entities from notes.",
		},
		"polisher": {
			Name:         "Polisher",
			Model:        "gpt-4.1-mini",
			SystemPrompt: "You rewrite text for clarity and professional tone without changing meaning.",
			MaxTokens:    12000,
			Category:     "Note Keeper",
			Description:  "Polishes text for clarity without changing meaning.",
		},
		"critic": {
			Name:         "Creative Critic",
			Model:        "claude-3-5-sonnet-20241022",
			SystemPrompt: "You give constructive, specific critique and improvement suggestions.",
			MaxTokens:    12000,
			Category:     "Note Keeper",
			Description:  "Gives specific, actionable critique.",
		},
		"poet_laureate": {
			Name:         "Poet Laureate",
			Model:        "gemini-3-flash-preview",
			SystemPrompt: "You transform content into poetic or artistic prose while preserving core ideas.",
			MaxTokens:    12000,
			Category:     "Note Keeper",
			Description:  "Rewrites content as poetic or artistic prose.",
		},
		"translator": {
			Name:         "Translator",
			Model:        "gemini-2.5-flash",
			SystemPrompt: "You translate accurately with correct terminology.",
			MaxTokens:    12000,
			Category:     "Note Keeper",
			Description:  "Translates accurately with correct terminology.",
		},
	})
}
