package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"skirmish-server/internal/domain"
)

const (
	MagicHeader string = `SKRP` // 4 байта
	Version1    uint32 = 1
	Extension          = ".skrp"
)

// ReplayFileHeader - это точное представление заголовка файла в памяти.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк, только массивы и числа.
// Строки и состав идут сразу после заголовка: MatchID, Mode, Roster (JSON).
type ReplayFileHeader struct {
	Magic       [4]byte // 4 байта
	Version     uint32  // 4 байта
	Seed        int64   // 8 байт
	Modulus     int64   // 8 байт
	Multiplier  int64   // 8 байт
	Increment   int64   // 8 байт
	Timestamp   int64   // 8 байт
	ActionCount int32   // 4 байта
	MatchIDLen  uint16  // 2 байта
	ModeLen     uint16  // 2 байта
	RosterLen   uint32  // 4 байта
}

// ActionHeader - заголовок каждой записи действия.
type ActionHeader struct {
	Round      int32  // 4
	ActionType uint8  // 1
	ActorLen   uint8  // 1
	PayloadLen uint16 // 2
}

type ReplayService struct {
	SaveDir string
}

// NewReplayService создает папку для записей, если её нет.
func NewReplayService(dir string) (*ReplayService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create replay dir: %w", err)
	}
	return &ReplayService{SaveDir: dir}, nil
}

// Save пишет запись матча в файл и возвращает путь к нему.
func (s *ReplayService) Save(session *domain.ReplaySession) (string, error) {
	filename := fmt.Sprintf("replay_%s_%d_%d%s", safeName(session.MatchID), session.Seed.Seed, session.Timestamp, Extension)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := writeBinary(w, session); err != nil {
		return "", err
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	return path, nil
}

// safeName оставляет в ID матча только символы, допустимые в имени файла.
func safeName(id string) string {
	if id == "" {
		return "match"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, id)
}

func writeBinary(w io.Writer, s *domain.ReplaySession) error {
	if len(s.MatchID) > 65535 {
		return fmt.Errorf("match id too long: %d", len(s.MatchID))
	}

	// 1. Подготавливаем и пишем ГЛОБАЛЬНЫЙ ЗАГОЛОВОК
	header := ReplayFileHeader{
		Version:     Version1,
		Seed:        s.Seed.Seed,
		Modulus:     s.Seed.Modulus,
		Multiplier:  s.Seed.Multiplier,
		Increment:   s.Seed.Increment,
		Timestamp:   s.Timestamp,
		ActionCount: int32(len(s.Actions)),
		MatchIDLen:  uint16(len(s.MatchID)),
		ModeLen:     uint16(len(s.Mode)),
		RosterLen:   uint32(len(s.Roster)),
	}
	copy(header.Magic[:], MagicHeader) // Копируем строку в массив [4]byte

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, chunk := range [][]byte{[]byte(s.MatchID), []byte(s.Mode), s.Roster} {
		if _, err := w.Write(chunk); err != nil {
			return fmt.Errorf("failed to write header body: %w", err)
		}
	}

	// 2. Пишем действия
	for _, act := range s.Actions {
		actorBytes := []byte(act.ActorID)
		if len(actorBytes) > 255 {
			return fmt.Errorf("actor id too long: %d", len(actorBytes))
		}

		payloadLen := len(act.Payload)
		if payloadLen > 65535 {
			return fmt.Errorf("payload too long: %d", payloadLen)
		}

		// Подготавливаем заголовок действия
		actHeader := ActionHeader{
			Round:      int32(act.Round),
			ActionType: uint8(act.Action),
			ActorLen:   uint8(len(actorBytes)),
			PayloadLen: uint16(payloadLen),
		}

		// Пишем заголовок действия одной командой
		if err := binary.Write(w, binary.LittleEndian, &actHeader); err != nil {
			return err
		}

		// Пишем динамические данные (тело)
		if _, err := w.Write(actorBytes); err != nil {
			return err
		}
		if payloadLen > 0 {
			if _, err := w.Write(act.Payload); err != nil {
				return err
			}
		}
	}

	return nil
}
