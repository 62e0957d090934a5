package prompt

import "fmt"

// DefaultStyle is used when the caller gives no styling instructions.
const DefaultStyle = "Use generic professional styling"

// TemplateExtraction asks the model to turn a contract into a template with
// named placeholders and return {"Template": ..., "Placeholders": {...}}.
func TemplateExtraction(contract string) string {
	return fmt.Sprintf(`Your primary objective is to analyze the ENTIRE provided contract text and identify EVERY specific, replaceable piece of information.

Step 1: Find all changeable data. Locate every text segment that is specific to this instance of the document and would change for different parties, subjects, dates or contexts:
- Names (individuals, companies, organizations, signatories, beneficiaries)
- Dates (effective dates, execution dates, start/end dates, deadlines)
- Locations and addresses (physical addresses, email addresses, notice addresses)
- Contact information (phone numbers, URLs)
- Monetary amounts, percentages, quantities, payment terms, itemized lists
- Instance-specific legal or technical terms (project code names, case IDs)
- Detailed descriptions (scope of work, duties, specific obligations or covenants)
- Titles of people, documents or projects
The information may be standalone text or follow a clear label (e.g. "Party A:" followed by a name).

Step 2: For each piece of information define:
1. A unique placeholder name using only letters, numbers and underscores (e.g. Primary_Party_Name, Agreement_Effective_Date). When the value followed a label, use the label to form the name.
2. "original_value": ONLY the data value, verbatim, complete and unabridged. Never include the preceding label. No truncation, no summarization, no ellipses.
3. "description": a short explanation of what the placeholder represents.

Step 3: Build the "Template" string: the full input text where ONLY the value parts are replaced by their placeholder names. Preserve labels, formatting, indentation and line breaks.

Step 4: Return a single valid JSON object with this exact structure and nothing else:
{
  "Template": "<full text with placeholders>",
  "Placeholders": {
    "<Placeholder_Name>": {
      "description": "<what the field represents>",
      "original_value": "<verbatim value from the source>"
    }
  }
}

Input context:
%s`, contract)
}

// TemplateFill asks the model to substitute user values into a template.
func TemplateFill(template, valuesJSON string) string {
	return fmt.Sprintf(`You are a document generation assistant. Your task is to generate a final contract by replacing the placeholders in the given template with real values provided by the user.

Here is the template:
%s

Here are the user-provided values for each placeholder:
%s

Instructions:
- Replace each placeholder in the template (written as Placeholder_Name or {Placeholder_Name}) with its corresponding value.
- Do not change any part of the text other than replacing placeholders.
- Return the full final document only, without any additional explanation.`, template, valuesJSON)
}

// Modification asks the model to apply one add/remove/modify request to a contract.
func Modification(contract, request string) string {
	return fmt.Sprintf(`You are an expert contract modification assistant. Modify the contract below according to the user's request while keeping legal coherence, professional language and the contract structure.

1. Understand whether the user wants to ADD new sections or clauses, REMOVE sections or clauses, or MODIFY existing content.
2. Preserve the overall structure and flow, use appropriate legal language, keep formatting consistent and keep section numbering logical.
3. For additions insert the content at the most appropriate place. For removals clean up references and renumber if needed. For modifications keep the intent and legal validity.
4. Keep the modification consistent with the other contract terms and preserve the essential elements (parties, consideration, terms).
5. Preserve all original formatting where not modified.

Current Contract:
%s

User's Modification Request:
%s

Respond with ONLY the complete modified contract text. No explanations or comments.`, contract, request)
}

// SectionSummary asks for a numbered outline of the contract's sections.
func SectionSummary(contract string) string {
	return fmt.Sprintf(`You are a contract analysis expert. Analyze the provided contract and create a clear, concise summary of its main sections and their purposes, so a user understands the structure before requesting modifications.

Instructions:
1. Identify all major sections, clauses and subsections.
2. Give a brief description of what each section covers.
3. Use a numbered format.
4. Focus on the areas a user might want to modify.

Contract Text:
%s

Required Output Format:
CONTRACT SECTIONS SUMMARY:
1. [Section Name] - [Brief description]
2. [Section Name] - [Brief description]
...

Include any notable clauses, terms or special provisions a user might want to modify.`, contract)
}

// Styling asks the model to turn plain text into one complete HTML document.
func Styling(text, instructions string) string {
	if instructions == "" {
		instructions = DefaultStyle
	}
	return fmt.Sprintf(`You are an expert document stylist. Reformat the following plain text into a single, complete, well-structured HTML document with headings, paragraphs, emphasis and lists where the structure calls for them.

Input Plain Text Content:
---------------------------
%s
---------------------------

Styling Instructions:
%s

Formatting tasks:
1. Identify the title, headings (H1, H2, H3), paragraphs and lists of the plain text.
2. Produce a complete document with <!DOCTYPE html>, <html>, <head>, <style> and <body>.
3. Put CSS in the <style> element. Follow the styling instructions. When they are %q apply:
   body { font-family: Arial, Helvetica, sans-serif; line-height: 1.6; margin: 30px; color: #333333; background-color: #fdfdfd; }
   .document-title { text-align: center; font-size: 28px; font-weight: bold; margin-bottom: 30px; color: #1a1a1a; }
   h1 { font-size: 22px; font-weight: bold; margin-top: 25px; margin-bottom: 15px; color: #2c2c2c; border-bottom: 2px solid #eeeeee; padding-bottom: 8px; }
   h2 { font-size: 20px; font-weight: bold; margin-top: 22px; margin-bottom: 12px; color: #2c2c2c; }
   h3 { font-size: 18px; font-weight: bold; margin-top: 20px; margin-bottom: 10px; color: #333333; }
   p { margin-bottom: 15px; text-align: left; }
   ul, ol { margin-left: 20px; padding-left: 20px; margin-bottom: 15px; }
   li { margin-bottom: 6px; }
   table { width: 100%%; border-collapse: collapse; margin-bottom: 15px; }
   th, td { border: 1px solid #dddddd; text-align: left; padding: 8px; }
   th { background-color: #f2f2f2; font-weight: bold; }
4. Use semantic tags and wrap the main title in a <div class="document-title"> or an <h1>.
5. Output ONLY the HTML document.`, text, instructions, DefaultStyle)
}
