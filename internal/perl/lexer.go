package perl

import (
	"fmt"
	"strings"
)

// lexer is a single-pass scanner over Perl source bytes. It keeps just enough
// state to step over strings, comments, POD, heredocs and quote-like bodies
// without misreading their contents as code.
type lexer struct {
	src   []byte
	pos   int
	line  int
	col   int
	nodes []Node
}

func lex(src []byte) ([]Node, error) {
	l := &lexer{src: src, line: 1, col: 1}

	if err := l.run(); err != nil {
		return nil, err
	}

	return l.nodes, nil
}

func (l *lexer) run() error {
	for l.pos < len(l.src) {
		c := l.src[l.pos]

		switch {
		case c == '=' && l.col == 1 && isAlpha(l.peek(1)):
			l.skipPod()

		case isSpace(c):
			l.advance()

		case c == '#':
			l.skipLine()

		case c == '\'' || c == '"' || c == '`':
			if _, err := l.readString(c); err != nil {
				return err
			}

		case c == '<' && l.peek(1) == '<' && l.heredocAhead():
			if err := l.skipHeredoc(); err != nil {
				return err
			}

		case c == '$':
			if err := l.scanDollar(""); err != nil {
				return err
			}

		case c == '@' || c == '%' || c == '&' || c == '*':
			l.skipSigilVariable()

		case isDigit(c):
			l.scanNumber()

		case isWordStart(c):
			if err := l.scanWord(); err != nil {
				return err
			}

		default:
			l.advance()
		}
	}

	return nil
}

func (l *lexer) scanWord() error {
	startLine, startCol := l.line, l.col
	startPos := l.pos
	word := l.readWord()

	// A word after an arrow is a method name, never a keyword.
	if startPos >= 2 && l.src[startPos-2] == '-' && l.src[startPos-1] == '>' {
		return nil
	}

	// v-string literal: v5.6.0
	if len(word) > 1 && word[0] == 'v' && allDigits(word[1:]) && l.peekByte() == '.' && isDigit(l.peek(1)) {
		lit := word + l.readVersionChars()
		l.emit(Node{Kind: KindNumber, Subtype: NumberVersion, Content: lit, Line: startLine, Column: startCol})

		return nil
	}

	switch word {
	case "__END__", "__DATA__":
		if startCol == 1 {
			l.pos = len(l.src)
		}

	case "use", "no", "require":
		l.parseInclude(word, startLine, startCol)

	case "my", "our", "local":
		return l.parseDeclaration(word, startLine, startCol)

	case "sub":
		l.parseSub(startLine, startCol)

	case "BEGIN", "UNITCHECK", "CHECK", "INIT", "END":
		if l.nextSignificantIs('{') {
			l.emit(Node{Kind: KindBlock, Phase: word, Content: word, Line: startLine, Column: startCol})
		}

	case "qr", "qw", "q", "qq", "m", "s", "tr", "y":
		return l.scanQuoteLike(word, startLine, startCol)
	}

	return nil
}

// parseInclude handles use/no/require. A bare version argument becomes the
// node's Version; a module or pragma name becomes its Name. Version literals
// consumed here never reappear as number nodes, so the version-literal rule
// cannot fire on an inclusion's own argument.
func (l *lexer) parseInclude(keyword string, line, col int) {
	node := Node{Kind: KindInclude, Type: keyword, Content: keyword, Line: line, Column: col}

	l.skipWhitespace()
	c := l.peekByte()

	switch {
	case isDigit(c) || (c == 'v' && isDigit(l.peek(1))):
		node.Version = l.readVersionChars()

	case isWordStart(c):
		node.Name = l.readWord()

		l.skipWhitespace()

		if l.peekByte() == '{' {
			node.HashArg = true
		}
	}

	l.emit(node)
}

func (l *lexer) parseDeclaration(qualifier string, line, col int) error {
	l.skipWhitespace()
	c := l.peekByte()

	switch {
	case c == '$' && l.peek(1) == '{':
		return l.scanDollar(qualifier)

	case c == '$' || c == '@' || c == '%':
		name := l.readVariable()
		l.emit(Node{Kind: KindVariableDecl, Qualifier: qualifier, Content: name, Line: line, Column: col})

	case c == '(':
		l.advance()

		for l.pos < len(l.src) {
			l.skipWhitespace()
			c := l.peekByte()

			if c == ')' {
				l.advance()
				break
			}

			if c == ',' {
				l.advance()
				continue
			}

			if c == '$' || c == '@' || c == '%' {
				name := l.readVariable()
				l.emit(Node{Kind: KindVariableDecl, Qualifier: qualifier, Content: name, Line: line, Column: col})

				continue
			}

			break
		}
	}

	return nil
}

func (l *lexer) parseSub(line, col int) {
	l.skipWhitespace()

	if !isWordStart(l.peekByte()) {
		return
	}

	name := l.readWord()

	var attrs []string

	l.skipWhitespace()

	if l.peekByte() == '(' {
		l.skipBalanced('(', ')')
		l.skipWhitespace()
	}

	for l.peekByte() == ':' && l.peek(1) != ':' {
		l.advance()
		l.skipWhitespace()

		for isWordStart(l.peekByte()) {
			attr := l.readWord()
			if l.peekByte() == '(' {
				l.skipBalanced('(', ')')
			}

			attrs = append(attrs, attr)
			l.skipWhitespace()
		}
	}

	l.emit(Node{Kind: KindSub, Name: name, Content: name, Attributes: attrs, Line: line, Column: col})
}

func (l *lexer) scanDollar(qualifier string) error {
	line, col := l.line, l.col

	switch next := l.peek(1); {
	case next == '^':
		if isAlpha(l.peek(2)) {
			content := string(l.src[l.pos : l.pos+3])
			l.advanceN(3)
			l.emit(Node{Kind: KindMagicVar, Content: content, Line: line, Column: col})

			return nil
		}

		l.advanceN(2)

	case next == '!':
		l.advanceN(2)
		l.emit(Node{Kind: KindMagicVar, Content: "$!", Line: line, Column: col})

	case next == '{':
		l.advanceN(2)
		l.skipWhitespace()

		q := l.peekByte()
		if q != '"' && q != '\'' {
			// ${name} or ${ expr }: keep scanning inside the block.
			return nil
		}

		content, err := l.readString(q)
		if err != nil {
			return err
		}

		l.skipWhitespace()

		if l.peekByte() == '}' {
			l.advance()
			l.emit(Node{
				Kind:      KindCast,
				Name:      content,
				Qualifier: qualifier,
				Content:   "${" + string(q) + content + string(q) + "}",
				Line:      line,
				Column:    col,
			})
		}

	case isWordStart(next):
		l.advance()
		l.readWord()

	case next == '#' || next == '$':
		// $#array or $$ref
		l.advanceN(2)
		l.readWord()

	default:
		// Punctuation global we do not track ($_, $@, $/, ...). Consume the
		// following byte too so string openers are not misread.
		l.advance()

		if l.pos < len(l.src) {
			l.advance()
		}
	}

	return nil
}

func (l *lexer) skipSigilVariable() {
	l.advance()

	if isWordStart(l.peekByte()) {
		l.readWord()
	}
}

func (l *lexer) scanNumber() {
	startLine, startCol := l.line, l.col
	start := l.pos

	if l.peekByte() == '0' && (l.peek(1) == 'b' || l.peek(1) == 'B') {
		l.advanceN(2)
		l.consumeDigitsAndUnderscores()
		l.emit(Node{Kind: KindNumber, Subtype: NumberBinary, Content: string(l.src[start:l.pos]), Line: startLine, Column: startCol})

		return
	}

	if l.peekByte() == '0' && (l.peek(1) == 'x' || l.peek(1) == 'X') {
		l.advanceN(2)

		for isHexDigit(l.peekByte()) || l.peekByte() == '_' {
			l.advance()
		}

		l.emit(Node{Kind: KindNumber, Subtype: NumberHex, Content: string(l.src[start:l.pos]), Line: startLine, Column: startCol})

		return
	}

	l.consumeDigitsAndUnderscores()

	dots := 0
	for l.peekByte() == '.' && isDigit(l.peek(1)) {
		dots++

		l.advance()
		l.consumeDigitsAndUnderscores()
	}

	content := string(l.src[start:l.pos])

	subtype := NumberDecimal

	switch {
	case dots >= 2:
		subtype = NumberVersion

	case dots == 0 && len(content) > 1 && content[0] == '0' && allOctal(content[1:]):
		subtype = NumberOctal

	default:
		if l.peekByte() == 'e' || l.peekByte() == 'E' {
			j := 1
			if l.peek(j) == '+' || l.peek(j) == '-' {
				j++
			}

			if isDigit(l.peek(j)) {
				l.advanceN(j)
				l.consumeDigitsAndUnderscores()

				content = string(l.src[start:l.pos])
			}
		}
	}

	l.emit(Node{Kind: KindNumber, Subtype: subtype, Content: content, Line: startLine, Column: startCol})
}

func (l *lexer) scanQuoteLike(op string, line, col int) error {
	open, adjacent, ok := l.quoteDelimiter()
	if !ok {
		// Bareword that happens to spell a quote-like operator.
		return nil
	}

	if open == '#' && !adjacent {
		// A detached '#' is a comment, not a delimiter.
		return nil
	}

	// Consume up to the delimiter.
	for l.src[l.pos] != open {
		l.advance()
	}

	if err := l.scanDelimited(op, line); err != nil {
		return err
	}

	if op == "s" || op == "tr" || op == "y" {
		if closerFor(open) != open {
			// Paired delimiters: the replacement has its own pair.
			l.skipWhitespace()

			if l.pos >= len(l.src) {
				return fmt.Errorf("unterminated %s operator at line %d", op, line)
			}

			if err := l.scanDelimited(op, line); err != nil {
				return err
			}
		} else if err := l.scanToClose(open, op, line); err != nil {
			return err
		}
	}

	for isAlpha(l.peekByte()) {
		l.advance()
	}

	l.emit(Node{Kind: KindQuoteLike, QuoteOp: op, Content: op, Line: line, Column: col})

	return nil
}

// quoteDelimiter peeks past horizontal whitespace for a usable quote-like
// delimiter. It reports the delimiter, whether it is adjacent to the
// operator, and whether one was found at all.
func (l *lexer) quoteDelimiter() (byte, bool, bool) {
	j := l.pos
	for j < len(l.src) && (l.src[j] == ' ' || l.src[j] == '\t') {
		j++
	}

	if j >= len(l.src) {
		return 0, false, false
	}

	c := l.src[j]
	if strings.IndexByte(`/|!^~'"`+"`"+`#{([<`, c) < 0 {
		return 0, false, false
	}

	return c, j == l.pos, true
}

func (l *lexer) scanDelimited(op string, line int) error {
	open := l.src[l.pos]
	closer := closerFor(open)
	paired := closer != open
	depth := 1

	l.advance()

	for l.pos < len(l.src) {
		c := l.src[l.pos]

		if c == '\\' {
			l.advanceN(2)
			continue
		}

		if paired && c == open {
			depth++
		} else if c == closer {
			depth--

			l.advance()

			if depth == 0 {
				return nil
			}

			continue
		}

		l.advance()
	}

	return fmt.Errorf("unterminated %s operator at line %d", op, line)
}

func (l *lexer) scanToClose(closer byte, op string, line int) error {
	for l.pos < len(l.src) {
		c := l.src[l.pos]

		if c == '\\' {
			l.advanceN(2)
			continue
		}

		l.advance()

		if c == closer {
			return nil
		}
	}

	return fmt.Errorf("unterminated %s operator at line %d", op, line)
}

func (l *lexer) readString(quote byte) (string, error) {
	startLine := l.line
	l.advance()

	start := l.pos

	for l.pos < len(l.src) {
		c := l.src[l.pos]

		if c == '\\' {
			l.advanceN(2)
			continue
		}

		if c == quote {
			content := string(l.src[start:l.pos])
			l.advance()

			return content, nil
		}

		l.advance()
	}

	return "", fmt.Errorf("unterminated string starting at line %d", startLine)
}

func (l *lexer) heredocAhead() bool {
	j := l.pos + 2
	if j < len(l.src) && l.src[j] == '~' {
		j++
	}

	if j >= len(l.src) {
		return false
	}

	c := l.src[j]

	return c == '"' || c == '\'' || isAlpha(c) || c == '_'
}

// skipHeredoc consumes a heredoc opener and its body. The remainder of the
// opening line is not scanned; the body runs from the next line to the
// terminator line.
func (l *lexer) skipHeredoc() error {
	startLine := l.line

	l.advanceN(2)

	indented := false
	if l.peekByte() == '~' {
		indented = true

		l.advance()
	}

	var (
		tag string
		err error
	)

	if c := l.peekByte(); c == '"' || c == '\'' {
		tag, err = l.readString(c)
		if err != nil {
			return err
		}
	} else {
		tag = l.readWord()
	}

	if tag == "" {
		return nil
	}

	l.skipLine()

	for l.pos < len(l.src) {
		line := l.readLine()

		trimmed := strings.TrimRight(line, " \t\r\n")
		if indented {
			trimmed = strings.TrimLeft(trimmed, " \t")
		}

		if trimmed == tag {
			return nil
		}
	}

	return fmt.Errorf("unterminated heredoc %q starting at line %d", tag, startLine)
}

func (l *lexer) skipPod() {
	for l.pos < len(l.src) {
		line := l.readLine()
		if strings.HasPrefix(line, "=cut") {
			return
		}
	}
}

func (l *lexer) readWord() string {
	start := l.pos

	for l.pos < len(l.src) {
		c := l.src[l.pos]

		if isWordChar(c) {
			l.advance()
			continue
		}

		if c == ':' && l.peek(1) == ':' && isWordChar(l.peek(2)) {
			l.advanceN(2)
			continue
		}

		break
	}

	return string(l.src[start:l.pos])
}

func (l *lexer) readVariable() string {
	start := l.pos
	l.advance()
	l.readWord()

	return string(l.src[start:l.pos])
}

func (l *lexer) readVersionChars() string {
	start := l.pos

	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if isDigit(c) || c == '.' || c == '_' || (c == 'v' && l.pos == start) {
			l.advance()
			continue
		}

		break
	}

	return string(l.src[start:l.pos])
}

func (l *lexer) consumeDigitsAndUnderscores() {
	for isDigit(l.peekByte()) || l.peekByte() == '_' {
		l.advance()
	}
}

func (l *lexer) skipBalanced(open, closer byte) {
	depth := 0

	for l.pos < len(l.src) {
		c := l.src[l.pos]

		if c == '\\' {
			l.advanceN(2)
			continue
		}

		if c == open {
			depth++
		} else if c == closer {
			depth--

			if depth == 0 {
				l.advance()
				return
			}
		}

		l.advance()
	}
}

func (l *lexer) skipLine() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		l.advance()

		if c == '\n' {
			return
		}
	}
}

func (l *lexer) readLine() string {
	start := l.pos
	l.skipLine()

	return string(l.src[start:l.pos])
}

func (l *lexer) skipWhitespace() {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.advance()
	}
}

func (l *lexer) nextSignificantIs(b byte) bool {
	j := l.pos
	for j < len(l.src) && isSpace(l.src[j]) {
		j++
	}

	return j < len(l.src) && l.src[j] == b
}

func (l *lexer) emit(n Node) {
	l.nodes = append(l.nodes, n)
}

func (l *lexer) advance() {
	if l.src[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	l.pos++
}

func (l *lexer) advanceN(n int) {
	for i := 0; i < n && l.pos < len(l.src); i++ {
		l.advance()
	}
}

func (l *lexer) peek(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}

	return l.src[l.pos+offset]
}

func (l *lexer) peekByte() byte {
	return l.peek(0)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isWordStart(c byte) bool {
	return isAlpha(c) || c == '_'
}

func isWordChar(c byte) bool {
	return isWordStart(c) || isDigit(c)
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}

	return true
}

func allOctal(s string) bool {
	for i := 0; i < len(s); i++ {
		if (s[i] < '0' || s[i] > '7') && s[i] != '_' {
			return false
		}
	}

	return true
}

func closerFor(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	case '{':
		return '}'
	case '<':
		return '>'
	default:
		return open
	}
}
