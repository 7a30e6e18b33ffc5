package workflow

// DefaultTemplate returns the recommended two-step pipeline: convert raw
// extracted text to Markdown, then produce a reviewer-oriented intelligence
// report from it.
func DefaultTemplate(model string, maxTokens int) []Step {
	return []Step{
		{
			AgentID:   "pdf_to_markdown_agent",
			Name:      "PDF → Markdown Agent",
			Model:     model,
			MaxTokens: maxTokens,
			Prompt:    "Convert the following content into clean structured Markdown. Preserve headings/lists/tables. Do not add facts.",
		},
		{
			AgentID:   "fda_510k_intel_agent",
			Name:      "510(k) Intelligence Agent",
			Model:     model,
			MaxTokens: maxTokens,
			Prompt:    "Analyze the provided context and produce a reviewer-oriented report with tables and risks. Keep it grounded in input.",
		},
	}
}

// LoadDefaults replaces the step list with the recommended pipeline using the
// workflow's default model and token budget.
func (w *Workflow) LoadDefaults() error {
	return w.Replace(DefaultTemplate(w.opts.DefaultModel, w.opts.DefaultMaxTokens))
}
