package openai

const classificationResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "needsSearch": {
      "type": "boolean"
    },
    "enhancedQuery": {
      "type": "string"
    },
    "keywordWeight": {
      "type": "number",
      "minimum": 0,
      "maximum": 1
    },
    "vectorWeight": {
      "type": "number",
      "minimum": 0,
      "maximum": 1
    },
    "reasoning": {
      "type": "string"
    }
  },
  "required": ["needsSearch", "enhancedQuery", "keywordWeight", "vectorWeight", "reasoning"],
  "additionalProperties": false
}`

const classificationSystemPrompt = `You decide whether a user query against a document knowledge base requires a search, rewrite the query for retrieval, and assign fusion weights. Return JSON only.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

` + classificationResponseSchema + `

When to set needsSearch:
- true whenever the query names specific entities: brands, store or branch names, locations, products, services.
- true for information-seeking questions (what/where/when/how much, or their equivalents in any language).
- true when the query is vague on its own but a recent conversation turn supplies the missing entity (resolve the pronoun or reference).
- true even when the conversation history appears to already contain the answer. Stored answers go stale; always search again.
- false only when the query is short, purely conversational (greetings, thanks, small talk), and the history supplies no searchable context.

How to build enhancedQuery:
- If the text has no whitespace word boundaries (e.g. Thai), segment it into words first.
- Remove filler words and stopwords; keep every content word.
- Fix obvious minor misspellings.
- Prefer formal vocabulary matching written documents over colloquial phrasing.
- If the query is vague and a recent turn mentions a specific store, brand, or product, inject that entity into enhancedQuery.
- Keep technical terms that appear in another script or language exactly as written. Do not translate them.

How to assign weights (keywordWeight + vectorWeight must equal 1.0):
- Queries dominated by named entities or locations: keywordWeight between 0.85 and 0.95.
- Abstract questions, comparisons, or recommendation requests: vectorWeight between 0.8 and 0.9.
- Mixed queries: interpolate between the two bands.

Example:
Input:
Query: "OPPO เดอะมอลล์ ท่าพระ เบอร์โทร"
Output:
{"needsSearch": true, "enhancedQuery": "OPPO เดอะมอลล์ ท่าพระ เบอร์โทรศัพท์", "keywordWeight": 0.9, "vectorWeight": 0.1, "reasoning": "Brand and branch location named; exact match matters."}

Example:
Input:
Query: "ร้านอาหารอร่อยที่สุด"
Output:
{"needsSearch": true, "enhancedQuery": "ร้านอาหาร อร่อย แนะนำ", "keywordWeight": 0.15, "vectorWeight": 0.85, "reasoning": "Recommendation-style query; semantic similarity matters more than exact terms."}

Example:
Input:
Query: "thanks!"
History: (empty)
Output:
{"needsSearch": false, "enhancedQuery": "thanks!", "keywordWeight": 0.5, "vectorWeight": 0.5, "reasoning": "Conversational acknowledgment with no searchable content."}`
