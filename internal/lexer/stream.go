package lexer

// Marker is a saved cursor position, see Stream.Mark.
type Marker int

// Stream is a single-pass cursor over a lexed token slice. It only moves
// backwards through Restore, which the parser uses for bounded lookahead.
type Stream struct {
	toks []Token
	pos  int
}

func NewStream(toks []Token) *Stream {
	if len(toks) == 0 || toks[len(toks)-1].Kind != TokenEOF {
		var end Position
		if len(toks) > 0 {
			end = toks[len(toks)-1].End
		}
		toks = append(toks, Token{Kind: TokenEOF, Pos: end, End: end})
	}
	return &Stream{toks: toks}
}

// NewStreamFromSource tokenizes src and wraps the result.
func NewStreamFromSource(src string) (*Stream, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return NewStream(toks), nil
}

func (s *Stream) Current() Token {
	return s.toks[s.pos]
}

func (s *Stream) Advance() {
	if s.pos < len(s.toks)-1 {
		s.pos++
	}
}

func (s *Stream) IsAtEnd() bool {
	return s.toks[s.pos].Kind == TokenEOF
}

// Lookahead returns the n-th token after the current one, counting all
// tokens including insignificant ones. Past the end it returns EOF.
func (s *Stream) Lookahead(n int) Token {
	idx := s.pos + n
	if idx >= len(s.toks) {
		return s.toks[len(s.toks)-1]
	}
	return s.toks[idx]
}

// SkipInsignificant advances past whitespace and comments.
func (s *Stream) SkipInsignificant() {
	for !s.IsAtEnd() && !s.toks[s.pos].Significant() {
		s.pos++
	}
}

// PeekSignificant returns the next significant token without moving.
func (s *Stream) PeekSignificant() Token {
	for i := s.pos; i < len(s.toks); i++ {
		if s.toks[i].Significant() {
			return s.toks[i]
		}
	}
	return s.toks[len(s.toks)-1]
}

func (s *Stream) Mark() Marker {
	return Marker(s.pos)
}

func (s *Stream) Restore(m Marker) {
	s.pos = int(m)
}
