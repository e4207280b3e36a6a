package prompts

// ConvertPrompt is the default user-prompt template. The single %s slot
// receives the raw MQL query exactly as submitted.
var ConvertPrompt = `Convert this Monitoring Query Language (MQL) query to PromQL:

%s

IMPORTANT: Please only return a working PromQL query for use.`
