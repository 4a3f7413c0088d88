// Package autoload registers all built-in LLM provider factories via their
// init functions. Import it for side effects:
//
//	import _ "scout/pkg/llm/autoload"
package autoload

import (
	_ "scout/pkg/llm/geminichat"
	_ "scout/pkg/llm/ollamachat"
	_ "scout/pkg/llm/openaichat"
)
