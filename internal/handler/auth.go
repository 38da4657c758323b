package handler

import (
	"github.com/hoverpick/hoverpick/internal/component"
	"github.com/hoverpick/hoverpick/internal/core/ecs"
	"github.com/hoverpick/hoverpick/internal/net"
	"github.com/hoverpick/hoverpick/internal/net/packet"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// HandleHello processes HELLO.
// Format: [opcode][token\0]
func HandleHello(sess *net.Session, r *packet.Reader, deps *Deps) {
	token := r.ReadS()

	if deps.AuthHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(deps.AuthHash), []byte(token)); err != nil {
			sess.Log().Info("feed auth rejected", zap.String("ip", sess.IP))
			sess.Close()
			return
		}
	}

	sess.SetState(packet.StateReady)
	SendWelcome(sess)

	// Bring the new client up to date with every slot.
	deps.World.UITexts.Each(func(_ ecs.EntityID, t *component.UIText) {
		SendUIText(sess, t.Key, t.Text)
	})

	sess.Log().Info("feed client ready", zap.String("ip", sess.IP))
}

// SendWelcome sends WELCOME.
// Format: [opcode][D version]
func SendWelcome(sess *net.Session) {
	w := packet.NewWriterWithOpcode(packet.S_OPCODE_WELCOME)
	w.WriteD(packet.ProtocolVersion)
	sess.Send(w.Bytes())
}

// SendUIText sends UI_TEXT.
// Format: [opcode][key\0][text\0]
func SendUIText(sess *net.Session, key, text string) {
	w := packet.NewWriterWithOpcode(packet.S_OPCODE_UI_TEXT)
	w.WriteS(key)
	w.WriteS(text)
	sess.Send(w.Bytes())
}
