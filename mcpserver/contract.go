package mcpserver

// DocumentFormatContract describes the document format that notion_read
// returns and notion_write accepts.
const DocumentFormatContract = `# Notion Document Format

A document is an optional YAML header between ` + "`---`" + ` lines, followed by a
Markdown body. notion_read returns this format; notion_write accepts it.

## Header

` + "```" + `yaml
---
id: 1a2b3c4d-...            # present on read; makes notion_write update in place
url: https://www.notion.so/...
title: Weekly sync          # the page title
icon: 🗓️                    # emoji, or an image URL
cover: https://...          # image URL
parent: <page id, URL or exact title>       # create under a page
database: <database id, URL or exact title> # or create as a database row
properties:                 # database rows only, keyed by property name
  Status: In progress       # select / status: option name
  Tags: [ops, q3]           # multi-select: list
  Due: 2025-07-01           # date; {start: ..., end: ...} for a range
  Estimate: 3               # number
  Done: false               # checkbox
  Owner: [<user id>]        # people: user IDs
created_time: ...           # read-only, ignored on write
last_edited_time: ...       # read-only, ignored on write
---
` + "```" + `

Rules:

1. Keys are exactly the ones above. Unknown keys are ignored.
2. ` + "`id`" + ` selects update mode; without it a new page is created and exactly one
   of ` + "`parent`" + ` or ` + "`database`" + ` is required.
3. Property names must match the database schema exactly. Unknown names and
   computed properties (formula, rollup, created/edited time and by, unique ID,
   button) are ignored. Use notion_schema to see the schema.
4. A non-numeric value for a number property clears it.

## Body

- Headings ` + "`#`" + ` to ` + "`###`" + ` (deeper levels become level 3).
- Paragraphs separated by blank lines.
- ` + "`- item`" + `, ` + "`1. item`" + `, ` + "`- [ ] task`" + ` / ` + "`- [x] done`" + `; indent two spaces to nest.
- ` + "`> quote`" + ` and fenced code blocks with a language.
- Pipe tables; the ` + "`| --- |`" + ` row marks the first row as a header.
- ` + "`![caption](https://image.url)`" + ` for images, ` + "`$$ expression $$`" + ` for equations.
- ` + "`▶ summary`" + ` with indented lines below makes a toggle.
- Inline: ` + "`**bold**`" + `, ` + "`*italic*`" + `, ` + "`~~strike~~`" + `, ` + "`` `code` ``" + `, ` + "`[text](url)`" + `, and
  page mentions ` + "`[@Title](notion://<page id>)`" + `. Markers combine, as in
  ` + "`***bold italic***`" + ` or ` + "`[**bold link**](url)`" + `.

Writing a non-empty body replaces the page's whole content. Sub-pages are kept.
An update with an empty body changes only the header fields.

Read-only markers such as ` + "`<!-- child_page: <id> Title -->`" + ` and
` + "`[Unsupported: <type>]`" + ` may appear on read; leave them as they are.
They are not written back, and the blocks they stand for are kept. Horizontal
rules (` + "`---`" + ` in the body) are ignored on write.

## Batches

Several documents can be written in one call by separating them with a line
containing exactly:

` + "```" + `
<!-- next-document -->
` + "```" + `

Each document succeeds or fails on its own. notion_read with depth > 1 returns
a batch in the same format.

## List filters

notion_list accepts ` + "`filter`" + ` expressions joined with AND:

- ` + "`Status is Done`" + `, ` + "`Status = Done`" + `, ` + "`Status is not Done`" + `, ` + "`Status != Done`" + `
- ` + "`Name contains launch`" + `
- ` + "`Estimate > 3`" + `, ` + "`>=`" + `, ` + "`<`" + `, ` + "`<=`" + `, ` + "`greater than`" + `, ` + "`less than`" + `
- ` + "`Due after 2025-01-01`" + `, ` + "`Due before 2025-06-30`" + `

and ` + "`sort`" + ` as ` + "`Due asc, Estimate desc`" + `. Clauses naming unknown
properties are ignored.
`
