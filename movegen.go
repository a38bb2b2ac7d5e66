package chess

// Fully legal move generation, branching on the number of checkers so that
// the no-check/single-check/double-check cases each get their own
// generation path instead of paying a make-move-then-isInCheck cost per
// candidate move. Pins are computed once per node rather than per move
// (see attackersTo in position.go and the castling block below).

// pinnedPieces returns, for the side to move, the bitboard of its own
// pieces that are pinned to its king, and fills pinRay[sq] with the ray
// each pinned piece may still move along: for each opposing sliding
// attacker whose attack ray through the king square intersects exactly
// one of our pieces, that piece is pinned.
func (pos *Position) pinnedPieces() (pinned Bitboard, pinRay [64]Bitboard) {
	us, them := pos.turn, pos.turn.Other()
	king := pos.kingSq[us]
	b := &pos.board
	kf, kr := int(king.File()), int(king.Rank())

	scan := func(sliders Bitboard, orthogonal bool) {
		for sliders != 0 {
			sq := sliders.Pop()
			sf, sr := int(sq.File()), int(sq.Rank())
			df, dr := sf-kf, sr-kr
			if orthogonal {
				if df != 0 && dr != 0 {
					continue
				}
			} else {
				if df == 0 || dr == 0 || abs(df) != abs(dr) {
					continue
				}
			}
			between := Between[king][sq] & b.allOccupied
			if between.Count() != 1 {
				continue
			}
			pinnedSq := between.LSB()
			if b.Occupied(us).Occupied(pinnedSq) {
				pinned |= SquareBB(pinnedSq)
				pinRay[pinnedSq] = Line[king][sq]
			}
		}
	}
	scan(b.pieces[them][Rook]|b.pieces[them][Queen], true)
	scan(b.pieces[them][Bishop]|b.pieces[them][Queen], false)
	return pinned, pinRay
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// GenerateLegalMoves fills and returns a MoveList of every strictly legal
// move in pos, branching on popcount(checkers).
func (pos *Position) GenerateLegalMoves() *MoveList {
	ml := &MoveList{}
	pos.generateMoves(ml, false)
	return ml
}

// GenerateCaptures fills a MoveList with only captures and queen
// promotions, used by quiescence search.
func (pos *Position) GenerateCaptures() *MoveList {
	ml := &MoveList{}
	pos.generateMoves(ml, true)
	n := 0
	for i := 0; i < ml.n; i++ {
		m := ml.moves[i].move
		if m.IsPromotion() && !m.IsCapture() && m.PromotionType() != Queen {
			continue
		}
		ml.moves[n] = ml.moves[i]
		n++
	}
	ml.n = n
	return ml
}

func (pos *Position) generateMoves(ml *MoveList, capturesOnly bool) {
	switch pos.checkers.Count() {
	case 2:
		pos.generateKingMoves(ml, capturesOnly)
	case 1:
		pos.generateEvasions(ml, capturesOnly)
	default:
		pos.generateAll(ml, capturesOnly)
	}
}

func (pos *Position) generateKingMoves(ml *MoveList, capturesOnly bool) {
	us, them := pos.turn, pos.turn.Other()
	b := &pos.board
	king := pos.kingSq[us]
	occWithoutKing := b.allOccupied &^ SquareBB(king)
	targets := KingAttacks[king] &^ b.Occupied(us)
	for targets != 0 {
		to := targets.Pop()
		if pos.attackersToIgnoring(to, occWithoutKing, us)&b.Occupied(them) != 0 {
			continue
		}
		pos.addMove(ml, king, to, capturesOnly)
	}
}

// attackersToIgnoring computes attackers to sq given a custom occupancy,
// used when the king has been virtually removed so a slider "sees
// through" its old square when generating the king's own moves.
func (pos *Position) attackersToIgnoring(sq Square, occ Bitboard, _ Color) Bitboard {
	b := &pos.board
	var attackers Bitboard
	attackers |= KnightAttacks[sq] & (b.pieces[White][Knight] | b.pieces[Black][Knight])
	attackers |= KingAttacks[sq] & (b.pieces[White][King] | b.pieces[Black][King])
	attackers |= PawnAttacks[White][sq] & b.pieces[Black][Pawn]
	attackers |= PawnAttacks[Black][sq] & b.pieces[White][Pawn]
	attackers |= RookAttacks(sq, occ) & (b.pieces[White][Rook] | b.pieces[Black][Rook] | b.pieces[White][Queen] | b.pieces[Black][Queen])
	attackers |= BishopAttacks(sq, occ) & (b.pieces[White][Bishop] | b.pieces[Black][Bishop] | b.pieces[White][Queen] | b.pieces[Black][Queen])
	return attackers
}

func (pos *Position) generateEvasions(ml *MoveList, capturesOnly bool) {
	us, them := pos.turn, pos.turn.Other()
	b := &pos.board
	king := pos.kingSq[us]
	checker := pos.checkers.LSB()

	pos.generateKingMoves(ml, capturesOnly)

	pinned, pinRay := pos.pinnedPieces()

	checkerPT := b.PieceAt(checker).Type()
	var blockMask Bitboard
	if checkerPT == Bishop || checkerPT == Rook || checkerPT == Queen {
		blockMask = Between[king][checker] | SquareBB(checker)
	} else {
		blockMask = SquareBB(checker)
	}

	// non-king pieces: captures of the checker or blocks on the ray.
	pos.generatePieceMoves(ml, us, them, blockMask, pinned, pinRay, capturesOnly)

	// en-passant evasion: capturing the checking pawn en passant.
	if pos.epSquare != NoSquare && checkerPT == Pawn {
		epCapSq := pos.epSquare
		var behind Square
		if us == White {
			behind = epCapSq - 8
		} else {
			behind = epCapSq + 8
		}
		if behind == checker {
			attackers := PawnAttacks[them][epCapSq] & b.pieces[us][Pawn]
			for attackers != 0 {
				from := attackers.Pop()
				if pinned.Occupied(from) && !pinRay[from].Occupied(epCapSq) {
					continue
				}
				if pos.enPassantLeavesKingSafe(from, epCapSq) {
					ml.Add(NewMove(from, epCapSq, FlagEnPassant))
				}
			}
		}
	}
}

func (pos *Position) generateAll(ml *MoveList, capturesOnly bool) {
	us, them := pos.turn, pos.turn.Other()
	pinned, pinRay := pos.pinnedPieces()

	pos.generateKingMoves(ml, capturesOnly)
	pos.generatePieceMoves(ml, us, them, Full, pinned, pinRay, capturesOnly)

	if pos.epSquare != NoSquare {
		b := &pos.board
		attackers := PawnAttacks[them][pos.epSquare] & b.pieces[us][Pawn]
		for attackers != 0 {
			from := attackers.Pop()
			if pinned.Occupied(from) && !pinRay[from].Occupied(pos.epSquare) {
				continue
			}
			if pos.enPassantLeavesKingSafe(from, pos.epSquare) {
				ml.Add(NewMove(from, pos.epSquare, FlagEnPassant))
			}
		}
	}

	if !capturesOnly {
		pos.generateCastling(ml)
	}
}

// enPassantLeavesKingSafe handles the rare "5th-rank pin" where removing
// both the capturing and captured pawn from the rank exposes the king to
// a rook/queen along that rank.
func (pos *Position) enPassantLeavesKingSafe(from, to Square) bool {
	us, them := pos.turn, pos.turn.Other()
	b := &pos.board
	var capturedSq Square
	if us == White {
		capturedSq = to - 8
	} else {
		capturedSq = to + 8
	}
	occ := b.allOccupied
	occ &^= SquareBB(from)
	occ &^= SquareBB(capturedSq)
	occ |= SquareBB(to)

	king := pos.kingSq[us]
	attackers := RookAttacks(king, occ) & (b.pieces[them][Rook] | b.pieces[them][Queen])
	attackers |= BishopAttacks(king, occ) & (b.pieces[them][Bishop] | b.pieces[them][Queen])
	return attackers == 0
}

// generatePieceMoves generates pawn/knight/bishop/rook/queen moves (no
// king, no castling, no en passant -- those are handled by their callers)
// whose destination lies in allowedTargets (Full when not in check, the
// block/capture mask when evading a single check).
func (pos *Position) generatePieceMoves(ml *MoveList, us, them Color, allowedTargets, pinned Bitboard, pinRay [64]Bitboard, capturesOnly bool) {
	b := &pos.board
	occ := b.allOccupied
	enemyOrEmptyMask := ^b.Occupied(us) & allowedTargets

	for pt := Knight; pt <= Queen; pt++ {
		bb := b.pieces[us][pt]
		for bb != 0 {
			from := bb.Pop()
			var attacks Bitboard
			switch pt {
			case Knight:
				attacks = KnightAttacks[from]
			case Bishop:
				attacks = BishopAttacks(from, occ)
			case Rook:
				attacks = RookAttacks(from, occ)
			case Queen:
				attacks = QueenAttacks(from, occ)
			}
			attacks &= enemyOrEmptyMask
			if pinned.Occupied(from) {
				attacks &= pinRay[from]
			}
			if capturesOnly {
				attacks &= b.Occupied(them)
			}
			for attacks != 0 {
				to := attacks.Pop()
				pos.addMove(ml, from, to, false)
			}
		}
	}

	pos.generatePawnMoves(ml, us, them, allowedTargets, pinned, pinRay, capturesOnly)
}

func (pos *Position) generatePawnMoves(ml *MoveList, us, them Color, allowedTargets, pinned Bitboard, pinRay [64]Bitboard, capturesOnly bool) {
	b := &pos.board
	occ := b.allOccupied
	pawns := b.pieces[us][Pawn]
	promoRank := Rank8BB
	startRank := RankBB[1]
	forward := 8
	if us == Black {
		promoRank = Rank1BB
		startRank = RankBB[6]
		forward = -8
	}

	for pawns != 0 {
		from := pawns.Pop()
		destMask := pinRay[from]
		isPinned := pinned.Occupied(from)

		// single & double pushes. Quiescence's capturesOnly mode still
		// wants non-capturing promotions, just not plain quiet pushes.
		oneSq := Square(int(from) + forward)
		if !occ.Occupied(oneSq) {
			if (!isPinned || destMask.Occupied(oneSq)) && allowedTargets.Occupied(oneSq) {
				isPromo := SquareBB(oneSq)&promoRank != 0
				if isPromo || !capturesOnly {
					pos.addPawnMove(ml, from, oneSq, isPromo, false)
				}
			}
			if !capturesOnly && SquareBB(from)&startRank != 0 {
				twoSq := Square(int(oneSq) + forward)
				if !occ.Occupied(twoSq) && allowedTargets.Occupied(twoSq) && (!isPinned || destMask.Occupied(twoSq)) {
					ml.Add(NewMove(from, twoSq, FlagDoublePush))
				}
			}
		}

		// captures
		caps := PawnAttacks[us][from] & b.Occupied(them) & allowedTargets
		if isPinned {
			caps &= destMask
		}
		for caps != 0 {
			to := caps.Pop()
			pos.addPawnMove(ml, from, to, SquareBB(to)&promoRank != 0, true)
		}
	}
}

func (pos *Position) addPawnMove(ml *MoveList, from, to Square, isPromo, isCapture bool) {
	if isPromo {
		for _, pt := range [4]PieceType{Queen, Rook, Bishop, Knight} {
			ml.Add(NewMove(from, to, promoFlag(pt, isCapture)))
		}
		return
	}
	if isCapture {
		ml.Add(NewMove(from, to, FlagCapture))
	} else {
		ml.Add(NewMove(from, to, FlagQuiet))
	}
}

func (pos *Position) addMove(ml *MoveList, from, to Square, capturesOnly bool) {
	if pos.board.PieceAt(to) != NoPiece {
		ml.Add(NewMove(from, to, FlagCapture))
	} else if !capturesOnly {
		ml.Add(NewMove(from, to, FlagQuiet))
	}
}

func (pos *Position) generateCastling(ml *MoveList) {
	if pos.InCheck() {
		return
	}
	us := pos.turn
	b := &pos.board
	occ := b.allOccupied

	if us == White {
		if pos.castling&WhiteKingSide != 0 &&
			occ&(SquareBB(F1)|SquareBB(G1)) == 0 &&
			!pos.isAttackedBy(E1, Black) && !pos.isAttackedBy(F1, Black) && !pos.isAttackedBy(G1, Black) {
			ml.Add(NewMove(E1, G1, FlagCastleKing))
		}
		if pos.castling&WhiteQueenSide != 0 &&
			occ&(SquareBB(B1)|SquareBB(C1)|SquareBB(D1)) == 0 &&
			!pos.isAttackedBy(E1, Black) && !pos.isAttackedBy(D1, Black) && !pos.isAttackedBy(C1, Black) {
			ml.Add(NewMove(E1, C1, FlagCastleQueen))
		}
	} else {
		if pos.castling&BlackKingSide != 0 &&
			occ&(SquareBB(F8)|SquareBB(G8)) == 0 &&
			!pos.isAttackedBy(E8, White) && !pos.isAttackedBy(F8, White) && !pos.isAttackedBy(G8, White) {
			ml.Add(NewMove(E8, G8, FlagCastleKing))
		}
		if pos.castling&BlackQueenSide != 0 &&
			occ&(SquareBB(B8)|SquareBB(C8)|SquareBB(D8)) == 0 &&
			!pos.isAttackedBy(E8, White) && !pos.isAttackedBy(D8, White) && !pos.isAttackedBy(C8, White) {
			ml.Add(NewMove(E8, C8, FlagCastleQueen))
		}
	}
}

// GivesCheck reports whether making m would put the opponent in check.
// It makes the move on a scratch copy rather than trying to
// special-case every piece's discovered-check geometry.
func (pos *Position) GivesCheck(m Move) bool {
	np := pos.MakeMove(m)
	return np.InCheck()
}
