/* Package gemtext implements incremental scanning of the line oriented
gemtext markup used by Gemini response bodies.

Each line is classified on its own, in a fixed priority order, as one of:
a preformatting fence toggle, preformatted text, a link, a heading, an
unordered list item, a quote, or plain text. The only state carried between
lines is whether a preformatted block is open.

Classified lines retain their raw bytes, and refer to their text and link
target by offsets within them; no content is copied until asked for.
*/
package gemtext
