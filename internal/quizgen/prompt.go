package quizgen

const systemPrompt = `You are an expert in Data Structures and Algorithms.`

const userPrompt = `Generate a challenging multiple-choice quiz question for advanced programmers on DSA topics.

Instructions:
- The question should focus on advanced DSA topics like graph algorithms, dynamic programming, etc.
- Provide 4 distinct options, each not exceeding 100 characters.
- Specify the correct answer by its index (0-based).
- Include a brief explanation (up to 200 characters) of the correct answer.
- Keep the question under 300 characters.
- Vary topics across different areas of DSA, covering areas like sorting, searching, trees, graphs, dynamic programming, etc.

Output a single JSON object (no extra text) with:
- "question": The DSA question.
- "options": A list of 4 possible answers.
- "correct_option_id": Index (0-based) of the correct answer.
- "explanation": A brief explanation of the correct answer.

Example:
{
  "question": "What is the worst-case time complexity of quicksort?",
  "options": ["O(n log n)", "O(n^2)", "O(n)", "O(log n)"],
  "correct_option_id": 1,
  "explanation": "Quicksort has O(n^2) worst-case when the pivot selection consistently results in highly unbalanced partitions."
}`
