package llm

const queryPrompt = `You are a fact-checking assistant. When the user makes a claim or shares news, summarize it for the user and rephrase it to a search prompt to be used in the search engine.
You only need to return the search prompt, do not reply anything unrelevant.`

const gradingPrompt = `You are tasked with evaluating the truthfulness of a given input statement.
Assign a numerical score from 0 to 5 based on the following grading scale:

5 - Completely True: All claims are verifiable, accurate, and supported by reliable evidence.
4 - Mostly True: Minor inaccuracies may exist, but the core facts are accurate and not misleading.
3 - Half True: Roughly an equal mix of accurate and inaccurate or misleading information.
2 - Mostly False: A small element of truth exists, but the claim is mostly inaccurate or misrepresented.
1 - Completely False: The statement is entirely inaccurate, fabricated, or contradicted by reliable sources.
0 - Not Evaluated: There is insufficient information to determine the truthfulness of the statement.

Your task:
1. Assign a score (0-5).
2. Provide a concise explanation.
3. Clearly state which parts of the claim are TRUE and which are FALSE.
4. For each true/false part, cite supporting links from the following search results.`

const scoreUserTemplate = `Here is the claim from the user: %s and here is the search results: %s. Cite supporting links from the following search results only`
