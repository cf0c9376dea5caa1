package gadget

import (
	"strings"
	"testing"
)

// TestStatusValid はステータスの閉集合判定を検証する。
func TestStatusValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status Status
		want   bool
	}{
		{"Availableは有効", StatusAvailable, true},
		{"Deployedは有効", StatusDeployed, true},
		{"Destroyedは有効", StatusDestroyed, true},
		{"Decommissionedは有効", StatusDecommissioned, true},
		{"空文字列は無効", Status(""), false},
		{"小文字は無効", Status("available"), false},
		{"未知の値は無効", Status("Broken"), false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.status.Valid(); got != tt.want {
				t.Errorf("Status(%q).Valid() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

// TestStatusTerminal は終端状態の判定を検証する。
func TestStatusTerminal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status Status
		want   bool
	}{
		{"Availableは非終端", StatusAvailable, false},
		{"Deployedは非終端", StatusDeployed, false},
		{"Destroyedは終端", StatusDestroyed, true},
		{"Decommissionedは終端", StatusDecommissioned, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.status.Terminal(); got != tt.want {
				t.Errorf("Status(%q).Terminal() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

// TestCanTransition は状態遷移表を検証する。
func TestCanTransition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"AvailableからDeployedへ遷移できること", StatusAvailable, StatusDeployed, true},
		{"AvailableからDestroyedへ遷移できること", StatusAvailable, StatusDestroyed, true},
		{"AvailableからDecommissionedへ遷移できること", StatusAvailable, StatusDecommissioned, true},
		{"DeployedからAvailableへ遷移できること", StatusDeployed, StatusAvailable, true},
		{"DeployedからDestroyedへ遷移できること", StatusDeployed, StatusDestroyed, true},
		{"同一ステータスの再設定は許可されること", StatusDestroyed, StatusDestroyed, true},
		{"DestroyedからAvailableへは遷移できないこと", StatusDestroyed, StatusAvailable, false},
		{"DestroyedからDeployedへは遷移できないこと", StatusDestroyed, StatusDeployed, false},
		{"DestroyedからDecommissionedへは遷移できないこと", StatusDestroyed, StatusDecommissioned, false},
		{"DecommissionedからAvailableへは遷移できないこと", StatusDecommissioned, StatusAvailable, false},
		{"DecommissionedからDestroyedへは遷移できないこと", StatusDecommissioned, StatusDestroyed, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

// TestGenerateCodename はコードネーム生成を検証する。
func TestGenerateCodename(t *testing.T) {
	t.Parallel()

	adjectives := make(map[string]struct{}, len(codenameAdjectives))
	for _, a := range codenameAdjectives {
		adjectives[a] = struct{}{}
	}
	nouns := make(map[string]struct{}, len(codenameNouns))
	for _, n := range codenameNouns {
		nouns[n] = struct{}{}
	}

	// ランダム生成なので複数回検証する
	for i := 0; i < 100; i++ {
		name := generateCodename()

		parts := strings.Split(name, " ")
		if len(parts) != 3 || parts[0] != "The" {
			t.Fatalf("コードネーム %q が \"The {Adjective} {Noun}\" 形式でない", name)
		}
		if _, ok := adjectives[parts[1]]; !ok {
			t.Errorf("形容詞 %q が語彙に含まれていない", parts[1])
		}
		if _, ok := nouns[parts[2]]; !ok {
			t.Errorf("名詞 %q が語彙に含まれていない", parts[2])
		}
	}
}

// TestMissionSuccessProbability は任務成功確率が[0, 100)に収まることを検証する。
func TestMissionSuccessProbability(t *testing.T) {
	t.Parallel()

	for i := 0; i < 1000; i++ {
		p := missionSuccessProbability()
		if p < 0 || p >= 100 {
			t.Fatalf("missionSuccessProbability() = %d, [0, 100)の範囲外", p)
		}
	}
}

// TestGenerateConfirmationCode は確認コードが6桁の範囲に収まることを検証する。
func TestGenerateConfirmationCode(t *testing.T) {
	t.Parallel()

	for i := 0; i < 1000; i++ {
		code := generateConfirmationCode()
		if code < 100000 || code > 999999 {
			t.Fatalf("generateConfirmationCode() = %d, [100000, 999999]の範囲外", code)
		}
	}
}
