// Package llm holds the external language-model collaborators the
// pipeline escalates to: query translation, query refinement, and
// schema proposal.
//
// Two translators exist. TemplateTranslator is the cheap first pass,
// rule-based and offline, with fixed confidences. Client is the
// expensive second pass, an OpenAI-compatible chat-completion client
// that includes a snippet of the committed schema in its prompts and
// retries rate-limit-class failures with backoff.
package llm
