package extract

import "fmt"

// Task prompts embed the fragment verbatim, describe the exact output shape,
// and pin the model to text found in the input. Each instructs the model to
// return the empty shape rather than prose when nothing is recognized.

const directionsPrompt = `You are an expert at extracting exam directions and question descriptions from exam papers.

ANALYZE THIS TEXT AND EXTRACT ALL DIRECTION BLOCKS:

%s

CRITICAL RULES:
1. Extract ONLY the actual direction/description text blocks that appear before question sets
2. For each block, identify the question range it applies to (e.g., "questions 1 to 5")
3. Return valid JSON with the exact structure below
4. Use ONLY text found in the input - no placeholders
5. Preserve the original wording and formatting
6. Return strictly the required shape with no surrounding prose

REQUIRED JSON FORMAT:
[
  {
    "type": "description",
    "from": 1,
    "to": 5,
    "text": "DIRECTIONS for questions 1 to 5: Each of the following questions..."
  }
]

If no directions are found, return an empty array: []`

const questionsPrompt = `You are an expert at extracting numbered multiple-choice questions from exam papers.

ANALYZE THIS TEXT AND EXTRACT ALL QUESTIONS:

%s

CRITICAL RULES:
1. Extract every numbered question together with its lettered options
2. Option keys are consecutive lowercase letters starting at "a"
3. Return valid JSON with the exact structure below
4. Use ONLY text found in the input - no placeholders
5. Preserve the original wording of questions and options
6. Return strictly the required shape with no surrounding prose

REQUIRED JSON FORMAT:
[
  {
    "number": 1,
    "text": "What is 2+2?",
    "options": {"a": "3", "b": "4", "c": "5", "d": "6"}
  }
]

If no questions are found, return an empty array: []`

const sectionsPrompt = `You are an expert at segmenting exam papers into their labeled sections.

ANALYZE THIS TEXT AND EXTRACT ALL SECTIONS WITH THEIR QUESTIONS:

%s

CRITICAL RULES:
1. A section starts at its header label and owns the questions up to the next header
2. Strip the label prefix from each section title
3. Return valid JSON with the exact structure below
4. Use ONLY text found in the input - no placeholders
5. Preserve document order of sections and questions
6. Return strictly the required shape with no surrounding prose

REQUIRED JSON FORMAT:
[
  {
    "section": "VARC",
    "questions": [
      {
        "number": 1,
        "text": "What is 2+2?",
        "options": {"a": "3", "b": "4", "c": "5", "d": "6"}
      }
    ]
  }
]

If no sections are found, return an empty array: []`

// BuildDirectionsPrompt embeds the fragment into the directions task.
func BuildDirectionsPrompt(fragment string) string {
	return fmt.Sprintf(directionsPrompt, fragment)
}

// BuildQuestionsPrompt embeds the fragment into the questions task.
func BuildQuestionsPrompt(fragment string) string {
	return fmt.Sprintf(questionsPrompt, fragment)
}

// BuildSectionsPrompt embeds the fragment into the sections task.
func BuildSectionsPrompt(fragment string) string {
	return fmt.Sprintf(sectionsPrompt, fragment)
}
