package storage

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"skirmish-server/internal/domain"
)

func (s *ReplayService) Load(path string) (*domain.ReplaySession, error) {
	return LoadFile(path)
}

// LoadFile читает запись без ReplayService (режим -replay).
func LoadFile(path string) (*domain.ReplaySession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readBinary(bufio.NewReader(f))
}

func readBinary(r io.Reader) (*domain.ReplaySession, error) {
	// 1. Читаем заголовок целиком
	var header ReplayFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("invalid magic")
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}
	if header.ActionCount < 0 {
		return nil, fmt.Errorf("invalid action count: %d", header.ActionCount)
	}

	matchID, err := readChunk(r, int(header.MatchIDLen))
	if err != nil {
		return nil, fmt.Errorf("failed to read match id: %w", err)
	}
	mode, err := readChunk(r, int(header.ModeLen))
	if err != nil {
		return nil, fmt.Errorf("failed to read mode: %w", err)
	}

	session := &domain.ReplaySession{
		MatchID: string(matchID),
		Seed: domain.RngSeed{
			Seed:       header.Seed,
			Modulus:    header.Modulus,
			Multiplier: header.Multiplier,
			Increment:  header.Increment,
		},
		Mode:      domain.BattleMode(mode),
		Timestamp: header.Timestamp,
		Actions:   make([]domain.ReplayAction, header.ActionCount),
	}

	// 2. Читаем состав
	if header.RosterLen > 0 {
		roster, err := readChunk(r, int(header.RosterLen))
		if err != nil {
			return nil, fmt.Errorf("failed to read roster: %w", err)
		}
		session.Roster = roster
	}

	// 3. Читаем Actions
	for i := 0; i < int(header.ActionCount); i++ {
		var ah ActionHeader
		if err := binary.Read(r, binary.LittleEndian, &ah); err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}

		act := domain.ReplayAction{
			Round:  int(ah.Round),
			Action: domain.ActionType(ah.ActionType),
		}

		actor, err := readChunk(r, int(ah.ActorLen))
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		act.ActorID = string(actor)

		if ah.PayloadLen > 0 {
			if act.Payload, err = readChunk(r, int(ah.PayloadLen)); err != nil {
				return nil, fmt.Errorf("action %d: %w", i, err)
			}
		} else {
			act.Payload = json.RawMessage{}
		}

		session.Actions[i] = act
	}

	return session, nil
}

func readChunk(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
