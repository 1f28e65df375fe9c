package service

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	wpBcryptPrefix  = "$wp$"
	wpPrehashKey    = "wp-sha384"
	phpassItoa64    = "./0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	phpassMinRounds = 7
	phpassMaxRounds = 30
)

// CheckWordPressPassword 校验 wp_users.user_pass
// 支持 WordPress 6.8 的 $wp$ 预哈希 bcrypt、普通 bcrypt、phpass（$P$/$H$）与旧版 MD5。
func CheckWordPressPassword(password, hash string) bool {
	switch {
	case hash == "":
		return false
	case strings.HasPrefix(hash, wpBcryptPrefix):
		return bcrypt.CompareHashAndPassword([]byte(hash[3:]), []byte(wordPressPrehash(password))) == nil
	case strings.HasPrefix(hash, "$2y$"), strings.HasPrefix(hash, "$2a$"), strings.HasPrefix(hash, "$2b$"):
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	case strings.HasPrefix(hash, "$P$"), strings.HasPrefix(hash, "$H$"):
		computed := phpassCrypt(password, hash)
		return computed != "" && subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
	case len(hash) <= 32:
		sum := md5.Sum([]byte(password))
		return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(sum[:])), []byte(strings.ToLower(hash))) == 1
	default:
		return false
	}
}

// HashWordPressPassword 生成 WordPress 6.8 格式的密码哈希
func HashWordPressPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(wordPressPrehash(strings.TrimSpace(password))), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return "$wp" + string(hash), nil
}

func wordPressPrehash(password string) string {
	mac := hmac.New(sha512.New384, []byte(wpPrehashKey))
	mac.Write([]byte(password))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// phpassCrypt phpass 可移植哈希
func phpassCrypt(password, setting string) string {
	if len(setting) < 12 {
		return ""
	}
	rounds := strings.IndexByte(phpassItoa64, setting[3])
	if rounds < phpassMinRounds || rounds > phpassMaxRounds {
		return ""
	}
	salt := setting[4:12]
	count := 1 << rounds

	sum := md5.Sum([]byte(salt + password))
	digest := sum[:]
	for i := 0; i < count; i++ {
		next := md5.Sum(append(append([]byte{}, digest...), password...))
		digest = next[:]
	}
	return setting[:12] + phpassEncode64(digest)
}

func phpassEncode64(input []byte) string {
	var out strings.Builder
	count := len(input)
	i := 0
	for i < count {
		value := int(input[i])
		i++
		out.WriteByte(phpassItoa64[value&0x3f])
		if i < count {
			value |= int(input[i]) << 8
		}
		out.WriteByte(phpassItoa64[(value>>6)&0x3f])
		if i >= count {
			break
		}
		i++
		if i < count {
			value |= int(input[i]) << 16
		}
		out.WriteByte(phpassItoa64[(value>>12)&0x3f])
		if i >= count {
			break
		}
		i++
		out.WriteByte(phpassItoa64[(value>>18)&0x3f])
	}
	return out.String()
}
